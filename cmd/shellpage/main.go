package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	apppkg "github.com/kk-code-lab/shellpage/internal/app"
	"github.com/kk-code-lab/shellpage/internal/config"
	fsutil "github.com/kk-code-lab/shellpage/internal/fs"
	"github.com/kk-code-lab/shellpage/internal/logging"
	"github.com/kk-code-lab/shellpage/internal/progress"
	"github.com/kk-code-lab/shellpage/internal/ui/prompt"
	"github.com/kk-code-lab/shellpage/internal/ui/terminal"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shellpage",
		Short: "Read text documents one line at a time behind a shell prompt",
		Long: `shellpage shows one page of a text document per line, right after a
prompt that looks like your shell's. Up/Down turn pages, b goes back and
Esc quits. The reading position of every document is remembered.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(config.LoadOptions{Path: path})
	if err != nil {
		return config.Config{}, err
	}
	if err := config.ApplyFlags(cmd.Flags(), &cfg); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog()
	}()
	logger.Debug("starting", "version", version, "documents", cfg.DocumentDir, "store", cfg.Store)

	library, err := fsutil.NewLibrary(cfg.DocumentDir, cfg.Extension)
	if err != nil {
		return err
	}

	store, err := progress.Open(cfg.Store, cfg.ProgressDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	term, err := terminal.Open(os.Stdin, os.Stdout, terminal.Options{
		EscapeTimeout: cfg.EscapeTimeout,
		TermName:      os.Getenv("TERM"),
	})
	if err != nil {
		return err
	}
	defer term.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	apppkg.WatchExitSignals(ctx, func(sig os.Signal) {
		logger.Info("exiting on signal", "signal", sig.String())
		term.Shutdown()
		_ = store.Close()
		_ = closeLog()
		os.Exit(0)
	})

	app := apppkg.NewApplication(apppkg.Options{
		Console:   term,
		Prompt:    prompt.New(prompt.CurrentEnv()),
		Library:   library,
		Store:     store,
		Logger:    logger,
		MenuPause: cfg.MenuPause,
	})
	if err := app.Run(ctx); err != nil {
		logger.Error("reader stopped", "err", err)
		return err
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "shellpage: %v\n", describe(err))
		os.Exit(1)
	}
}

// describe adds a hint for the errors a first-time user is most likely to hit.
func describe(err error) string {
	switch {
	case errors.Is(err, fsutil.ErrDocumentDirMissing):
		return fmt.Sprintf("%v (create it or pass --%s)", err, config.FlagDir)
	case errors.Is(err, apppkg.ErrNoDocuments):
		return fmt.Sprintf("%v (add files to the document directory)", err)
	case errors.Is(err, terminal.ErrNotTerminal):
		return fmt.Sprintf("%v (run shellpage from an interactive terminal)", err)
	default:
		return err.Error()
	}
}
