// Package catalog holds presentation-side helpers for catalog listings.
package catalog

import (
	"strings"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
)

// CourseFilter narrows a course list. Empty fields match everything.
type CourseFilter struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	Level    string `form:"level"`
}

// Empty reports whether the filter matches everything
func (f CourseFilter) Empty() bool {
	return strings.TrimSpace(f.Query) == "" && f.Category == "" && f.Level == ""
}

// FilterCourses returns the courses matching f, preserving order.
// Query matches title, description, instructor or tags, case-insensitively.
func FilterCourses(courses []apiclient.Course, f CourseFilter) []apiclient.Course {
	if f.Empty() {
		return courses
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]apiclient.Course, 0, len(courses))
	for _, course := range courses {
		if f.Category != "" && !strings.EqualFold(course.Category, f.Category) {
			continue
		}
		if f.Level != "" && !strings.EqualFold(course.Level, f.Level) {
			continue
		}
		if query != "" && !matchesQuery(course, query) {
			continue
		}
		out = append(out, course)
	}
	return out
}

func matchesQuery(course apiclient.Course, query string) bool {
	fields := []string{course.Title, course.Description, course.Instructor}
	fields = append(fields, course.Tags...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories in first-seen order
func Categories(courses []apiclient.Course) []string {
	seen := make(map[string]bool)
	var out []string
	for _, course := range courses {
		if course.Category == "" || seen[strings.ToLower(course.Category)] {
			continue
		}
		seen[strings.ToLower(course.Category)] = true
		out = append(out, course.Category)
	}
	return out
}
