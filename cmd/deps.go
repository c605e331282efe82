package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dsilva/studium/internal/app"
	"github.com/dsilva/studium/internal/clock"
	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/flashcards"
	"github.com/dsilva/studium/internal/judge"
	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/llm"
	"github.com/dsilva/studium/internal/logging"
	"github.com/dsilva/studium/internal/report"
	"github.com/dsilva/studium/internal/session"
	"github.com/dsilva/studium/internal/solutions"
)

// openLibrary builds the logger, opens the store and signs in the
// profile from --user or STUDIUM_USER, if any.
func openLibrary(cmd *cobra.Command) (*library.Library, *zap.Logger, func(), error) {
	logger, err := logging.New("")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("set up logging: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	store, err := library.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open library store: %w", err)
	}

	cleanup := func() {
		_ = store.Close()
		_ = logger.Sync()
	}

	lib := library.New(store, logger)
	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		user = os.Getenv("STUDIUM_USER")
	}
	if user != "" {
		if err := lib.SwitchUser(cmd.Context(), user); err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("load profile %q: %w", user, err)
		}
	}

	return lib, logger, cleanup, nil
}

// buildDeps wires the full service graph for the TUI.
func buildDeps(cmd *cobra.Command) (app.Deps, func(), error) {
	lib, logger, cleanup, err := openLibrary(cmd)
	if err != nil {
		return app.Deps{}, nil, err
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), logger)
	if err != nil {
		cleanup()
		return app.Deps{}, nil, fmt.Errorf(
			"LLM provider not configured: %w\nSet STUDIUM_LLM_PROVIDER and the matching API key (or use provider \"mock\")", err)
	}

	gen := exercise.New(provider, exercise.DefaultConfig())
	deps := session.Deps{
		Clock:     clock.NewTicker(),
		Generator: gen,
		Judge:     judge.New(provider, judge.DefaultConfig()),
		Reporter:  report.New(provider, report.DefaultConfig()),
		Library:   lib,
		Logger:    logger,
	}

	return app.Deps{
		Library: lib,
		Quiz:    session.NewQuiz(deps),
		Mixed:   session.NewMixed(deps),
		Match:   session.NewMatch(deps),
		Solver:  solutions.New(provider, lib, solutions.DefaultConfig()),
		Cards:   flashcards.New(gen, lib),
	}, cleanup, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	deps, cleanup, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return app.Run(deps)
}
