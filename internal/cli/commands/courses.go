package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/learnhub-dev/learnhub/internal/catalog"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// NewCoursesCmd creates the courses command group
func NewCoursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Browse and enroll in courses",
	}

	var filter catalog.CourseFilter
	list := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoursesList(cmd.Context(), filter, WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	}
	list.Flags().StringVar(&filter.Query, "q", "", "Search title, description, instructor and tags")
	list.Flags().StringVar(&filter.Category, "category", "", "Only show this category")
	list.Flags().StringVar(&filter.Level, "level", "", "Only show this level")

	enroll := &cobra.Command{
		Use:   "enroll <course-id>",
		Short: "Enroll in a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnroll(cmd.Context(), args[0], WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	}

	cmd.AddCommand(list, enroll)
	return cmd
}

func runCoursesList(ctx context.Context, filter catalog.CourseFilter, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := newRunEnv(opts...)
	if err != nil {
		return err
	}

	courses, err := env.api.ListCourses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}
	courses = catalog.FilterCourses(courses, filter)

	if len(courses) == 0 {
		fmt.Fprintln(env.out, "No courses found.")
		return nil
	}

	w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tLEVEL\tPRICE")
	fmt.Fprintln(w, "──\t─────\t────────\t─────\t─────")
	for _, course := range courses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\n",
			course.ID,
			course.Title,
			course.Category,
			course.Level,
			course.Price,
		)
	}
	return w.Flush()
}

func runEnroll(ctx context.Context, courseID string, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := newRunEnv(opts...)
	if err != nil {
		return err
	}
	if err := env.requireSession(tokenstore.RoleUser); err != nil {
		return err
	}

	if err := env.api.EnrollCourse(ctx, courseID); err != nil {
		return fmt.Errorf("failed to enroll: %w", err)
	}
	fmt.Fprintf(env.out, "✓ Enrolled in %s\n", courseID)
	return nil
}
