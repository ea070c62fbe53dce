package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/asynkron/codexterm/internal/auth"
	"github.com/asynkron/codexterm/internal/config"
	"github.com/asynkron/codexterm/internal/lessons"
	"github.com/asynkron/codexterm/internal/session"
)

func newLessonCmd(opts *rootOptions) *cobra.Command {
	var course string
	var file string
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Open a course's lessons next to a code editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if course != "" {
				cfg.Lessons.Course = course
			}
			if file != "" {
				cfg.Lessons.File = file
			}
			authState := auth.NewState(cfg.LoggedIn())
			if err := requireSignedIn(authState); err != nil {
				return err
			}

			list, loadErr := loadLessons(cmd.Context(), cfg)
			if errors.Is(loadErr, lessons.ErrCourseRequired) {
				return fmt.Errorf("lesson needs --course or --lessons: %w", loadErr)
			}
			var status []string
			if loadErr != nil {
				pslog.Ctx(cmd.Context()).Warn("lessons unavailable", "err", loadErr)
				status = append(status, fmt.Sprintf("Failed to load lessons: %v", loadErr))
			}

			return runTUI(cmd.Context(), cfg, tuiSession{
				kind:        session.KindLesson,
				starterCode: cfg.Lesson.StarterCode,
				navigator:   lessons.NewNavigator(list),
				auth:        authState,
				status:      status,
			})
		},
	}
	cmd.Flags().StringVar(&course, "course", "", "course id to fetch from the lesson API (overrides lessons.course)")
	cmd.Flags().StringVar(&file, "lessons", "", "YAML lesson file (overrides lessons.file)")
	return cmd
}

// requireSignedIn gates course content on the signed-in capability.
func requireSignedIn(capability auth.Capability) error {
	if err := auth.Require(capability); err != nil {
		return fmt.Errorf("%s (set auth.token in the config file): %w", auth.SignInPrompt, err)
	}
	return nil
}

// loadLessons reads lessons from the configured file, or from the course API
// when no file is set.
func loadLessons(ctx context.Context, cfg config.Config) ([]lessons.Lesson, error) {
	var source lessons.Source
	if cfg.Lessons.File != "" {
		source = lessons.FileSource{Path: cfg.Lessons.File}
	} else {
		source = lessons.HTTPSource{BaseURL: cfg.Lessons.APIURL, Course: cfg.Lessons.Course}
	}
	return source.Lessons(ctx)
}
