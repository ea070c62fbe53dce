package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asynkron/codexterm/internal/auth"
	"github.com/asynkron/codexterm/internal/lessons"
)

const noCoursesMessage = "No courses available at the moment."

func newCoursesCmd(opts *rootOptions) *cobra.Command {
	var apiURL string
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List the courses published by the lesson API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if url := strings.TrimSpace(apiURL); url != "" {
				cfg.Lessons.APIURL = url
			}

			courses, err := lessons.CourseCatalog{BaseURL: cfg.Lessons.APIURL}.Courses(cmd.Context())
			if err != nil {
				return err
			}
			if err := printCourses(cmd.OutOrStdout(), courses); err != nil {
				return err
			}
			if len(courses) > 0 && auth.Require(auth.NewState(cfg.LoggedIn())) != nil {
				_, err = fmt.Fprintln(cmd.ErrOrStderr(), auth.SignInPrompt)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&apiURL, "api-url", "", "lesson API base URL (overrides lessons.api_url)")
	return cmd
}

// printCourses writes one block per course: the id to pass to
// "lesson --course", the title with its lesson count, then the description.
func printCourses(w io.Writer, courses []lessons.Course) error {
	if len(courses) == 0 {
		_, err := fmt.Fprintln(w, noCoursesMessage)
		return err
	}
	for _, c := range courses {
		title := c.Title
		if title == "" {
			title = "No Title"
		}
		description := c.Description
		if description == "" {
			description = "No Description"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s (%d lessons)\n\t%s\n", c.DocumentID, title, len(c.Lessons), description); err != nil {
			return err
		}
	}
	return nil
}
