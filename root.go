package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/tunematch/internal/app"
	"github.com/llehouerou/tunematch/internal/config"
	"github.com/llehouerou/tunematch/internal/scan"
	"github.com/llehouerou/tunematch/internal/state"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "tunematch [dir]",
		Short:         "Match local music files against online metadata",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(ctx, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	flags.StringSliceVarP(&ctx.providerFlag, "provider", "p", nil,
		fmt.Sprintf("Metadata providers to query (%s)", joinProviders()))
	flags.StringVar(&ctx.logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))

	return rootCmd
}

func runTUI(ctx *commandContext, args []string) error {
	defer ctx.close()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	log, err := ctx.logger()
	if err != nil {
		return err
	}
	st, err := ctx.openState()
	if err != nil {
		return err
	}

	searcher, err := newSearcher(cfg, st, log)
	if err != nil {
		return err
	}

	startPath, selected, err := resolveStartPath(args, st, cfg)
	if err != nil {
		return err
	}
	log.Info("starting",
		zap.String("path", startPath),
		zap.Strings("providers", searcher.Providers()))

	model := app.New(app.Deps{
		Scanner:  scan.New(log),
		Searcher: searcher,
		Applier:  newApplier(cfg, log),
		State:    st,
		Logger:   log,
		MinScore: cfg.MinScore,
	}, startPath, selected)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

// navigationSource is the part of the state store used to restore the
// last visited directory.
type navigationSource interface {
	GetNavigation() (*state.NavigationState, error)
}

// resolveStartPath picks the directory to open: the argument, then the
// saved navigation state, then the configured default folder, then the
// working directory. The second value is the entry to select, if any.
func resolveStartPath(args []string, nav navigationSource, cfg *config.Config) (string, string, error) {
	if len(args) > 0 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return "", "", err
		}
		info, err := os.Stat(path)
		if err != nil {
			return "", "", err
		}
		if !info.IsDir() {
			return "", "", fmt.Errorf("%s: not a directory", path)
		}
		return path, "", nil
	}

	if nav != nil {
		saved, err := nav.GetNavigation()
		if err == nil && saved != nil && isDir(saved.CurrentPath) {
			return saved.CurrentPath, saved.SelectedName, nil
		}
	}

	if cfg != nil && cfg.DefaultFolder != "" && isDir(cfg.DefaultFolder) {
		return cfg.DefaultFolder, "", nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", "", errors.New("cannot determine a starting directory")
	}
	return cwd, "", nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
