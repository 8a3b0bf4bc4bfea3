package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	core "projlist/internal/app"
	"projlist/internal/config"
	"projlist/internal/format"
	"projlist/internal/logging"
	"projlist/internal/store"
	"projlist/internal/tui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	Backend    string
	Dir        string
	Key        string
	RedisAddr  string
	LogLevel   string
	PrettyJSON bool
	Format     string

	cfg   *config.Config
	log   *zap.Logger
	flush func()

	// prompt asks one question and returns the answer line. Defaults to readline on
	// the command's stdin.
	prompt func(label string) (string, error)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "projlist",
		Short:        "Small project list (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  projlist

  # Scriptable commands
  projlist projects list --format yaml
  projlist projects add --first-name Ada --last-name Lovelace --description "lead"
  projlist projects clear --yes
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	// Cobra skips post-run hooks when RunE fails; withModel flushes on that path.
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("PROJLIST_CONFIG", ""), "Config file (default ~/.config/projlist/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|file|redis|memory)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Data directory for sqlite/file storage and the log file")
	cmd.PersistentFlags().StringVar(&app.Key, "key", "", "Storage key holding the project collection")
	cmd.PersistentFlags().StringVar(&app.RedisAddr, "redis-addr", "", "Redis address (redis backend)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error|off)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PROJLIST_FORMAT", "json"), "Output format ("+strings.Join(format.Formats, "|")+")")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// setup resolves the effective configuration and the logger. Precedence is
// flags, PROJLIST_* environment (a .env file counts), config file, defaults.
func (app *App) setup(cmd *cobra.Command) error {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	overrides := map[string]any{}
	for flag, key := range map[string]string{
		"backend":    "storage.backend",
		"dir":        "storage.dir",
		"key":        "storage.key",
		"redis-addr": "storage.redis_addr",
		"log-level":  "log.level",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	cfg, err := config.LoadWithOverrides(app.ConfigPath, overrides)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg

	log, flush, err := logging.New(cfg.Log)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = log.With(zap.String("cmd", cmd.CommandPath()))
	app.flush = flush

	if app.prompt == nil {
		app.prompt = readlinePrompt(cmd)
	}
	return nil
}

func (app *App) teardown() {
	if app.flush != nil {
		app.flush()
		app.flush = nil
	}
}

// withModel opens the configured backend, loads the collection and runs fn.
func withModel(cmd *cobra.Command, app *App, fn func(ctx context.Context, m *core.Model, st store.Backend) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer app.teardown()

	st, err := store.Open(ctx, app.cfg.Storage)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			app.log.Warn("close store", zap.Error(err))
		}
	}()
	app.log.Debug("store opened", zap.Stringer("store", st))

	m := core.New(st, core.WithKey(app.cfg.Storage.Key), core.WithLogger(app.log))
	m.Initialize(ctx)
	return fn(ctx, m, st)
}

func runTUI(cmd *cobra.Command, app *App) error {
	return withModel(cmd, app, func(ctx context.Context, m *core.Model, st store.Backend) error {
		err := tui.Run(ctx, m, tui.Options{
			Theme:   app.cfg.TUI.Theme,
			Inline:  app.cfg.TUI.Inline,
			Backend: st.String(),
			Logger:  app.log,
		})
		if err != nil {
			return writeErr(cmd, err)
		}
		return nil
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeErr annotates err for the user; cobra prints whatever RunE returns.
func writeErr(cmd *cobra.Command, err error) error {
	if errors.Is(err, core.ErrPersist) {
		return fmt.Errorf("%w (nothing was saved)", err)
	}
	return err
}
