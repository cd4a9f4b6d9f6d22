package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/motionlab/internal/config"
	"github.com/san-kum/motionlab/internal/i18n"
	"github.com/san-kum/motionlab/internal/screen"
	"github.com/san-kum/motionlab/internal/session"
	"github.com/san-kum/motionlab/internal/storage"
	"github.com/san-kum/motionlab/internal/tui"
	"github.com/san-kum/motionlab/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile string
	dataDir    string
	lang       string
	theme      string
	startView  string
	logFile    string
	verbose    bool

	cfg    *config.Config
	bundle *i18n.Bundle
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "motionlab",
		Short: "kinematics lab: free fall, linear and projectile motion",
		Long: `motionlab explores three textbook kinematics scenarios.

Run without a command for the interactive session, or use a subcommand for a
one-shot computation.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for exports and logs")
	pf.StringVar(&lang, "lang", config.DefaultLocale, "display language (en-US, ko-KR)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logFile, "log-file", "", "log file (default <data>/motionlab.log in interactive mode)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&startView, "view", "", "initial view (home, freefall, linear, projectile)")

	rootCmd.AddCommand(
		newFreeFallCmd(),
		newLinearCmd(),
		newProjectileCmd(),
		newAboutCmd(),
		newPresetsCmd(),
		newRunsCmd(),
		newShowCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// setup resolves configuration (file, then environment, then flags), loads
// the message catalogs and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("lang") {
		cfg.Locale = lang
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Lookup("view") != nil && flags.Changed("view") {
		v, err := session.ParseView(startView)
		if err != nil {
			return err
		}
		cfg.StartView = v
	}

	bundle, err = i18n.Load()
	if err != nil {
		return err
	}

	logger, err = buildLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("config resolved",
		zap.String("locale", cfg.Locale),
		zap.String("theme", cfg.Theme),
		zap.String("data_dir", cfg.DataDir),
		zap.Stringer("start_view", cfg.StartView))
	return nil
}

// buildLogger logs to stderr for one-shot commands. The interactive session
// owns the terminal, so it logs to a file instead.
func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	path := cfg.LogFile
	if path == "" && cmd.Parent() == nil {
		path = cfg.LogPath()
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	} else if !verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return zc.Build()
}

func printer() *i18n.Printer {
	return bundle.Printer(cfg.Locale)
}

func newRenderer(mdStyle string) *screen.Renderer {
	return screen.New(printer(),
		screen.WithStyles(viz.NewStyles(viz.GetTheme(cfg.Theme))),
		screen.WithPlotSize(cfg.Plot.Width, cfg.Plot.Height),
		screen.WithMarkdownStyle(mdStyle),
	)
}

func newSession(in session.Inputs) *session.Session {
	return session.New(session.WithLogger(logger), session.WithInputs(in))
}

func runInteractive(cmd *cobra.Command, args []string) error {
	sess := newSession(cfg.Inputs)
	logger.Info("interactive session",
		zap.String("session", sess.ID()),
		zap.String("locale", printer().Locale()))

	return tui.RunInteractive(tui.Options{
		Session:  sess,
		Renderer: newRenderer("dark"),
		Store:    storage.New(cfg.DataDir),
		Logger:   logger,
		Start:    cfg.StartView,
	})
}
