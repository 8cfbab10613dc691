package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
)

var courses = []apiclient.Course{
	{ID: "1", Title: "Go for Beginners", Category: "Programming", Level: "beginner", Tags: []string{"golang"}},
	{ID: "2", Title: "Advanced Kubernetes", Category: "DevOps", Level: "advanced", Instructor: "Grace"},
	{ID: "3", Title: "Data Science 101", Category: "programming", Level: "beginner", Description: "Python and pandas"},
}

func ids(cs []apiclient.Course) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterCourses(t *testing.T) {
	tests := []struct {
		name   string
		filter CourseFilter
		want   []string
	}{
		{"empty filter", CourseFilter{}, []string{"1", "2", "3"}},
		{"category case-insensitive", CourseFilter{Category: "PROGRAMMING"}, []string{"1", "3"}},
		{"level", CourseFilter{Level: "advanced"}, []string{"2"}},
		{"query on title", CourseFilter{Query: "kubernetes"}, []string{"2"}},
		{"query on tag", CourseFilter{Query: "GOLANG"}, []string{"1"}},
		{"query on description", CourseFilter{Query: "pandas"}, []string{"3"}},
		{"query on instructor", CourseFilter{Query: "grace"}, []string{"2"}},
		{"combined", CourseFilter{Category: "programming", Query: "data"}, []string{"3"}},
		{"no match", CourseFilter{Query: "rust"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterCourses(courses, tt.filter)))
		})
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Programming", "DevOps"}, Categories(courses))
}
