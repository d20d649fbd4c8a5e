package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/AuraOS/internal/client"
	"github.com/GriffinCanCode/AuraOS/internal/discovery"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuraOS/internal/media"
	"github.com/GriffinCanCode/AuraOS/internal/shared/paths"
	"github.com/GriffinCanCode/AuraOS/internal/shell"
	"github.com/GriffinCanCode/AuraOS/internal/shell/config"
	"github.com/GriffinCanCode/AuraOS/internal/shell/panels"
	"github.com/GriffinCanCode/AuraOS/internal/shell/storage"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aura",
	Short: "Aura OS terminal shell",
	Long: `Aura is a terminal desktop for the Aura relay.

It discovers a reachable relay, gates the session behind a robot
login, and hosts the chat, inbox, files, maps, terminal, market,
storage, camera and security apps.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		if err := paths.Ensure(cfg.LogFile); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		l, err := logging.New(logging.FileConfig(cfg.LogFile, level))
		if err != nil {
			return err
		}
		logger = l.Logger
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runShell,
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe relay candidates and print the reachable base",
	RunE: func(cmd *cobra.Command, args []string) error {
		prober := newProber()
		base, err := prober.Discover(cmd.Context())
		if err != nil {
			return fmt.Errorf("%w (tried %d candidates, keeping %q)", err, len(prober.Candidates), base)
		}
		fmt.Fprintln(cmd.OutOrStdout(), base)
		return nil
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Fetch the relay's system state",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := connect(cmd.Context())
		state, err := c.SystemState(cmd.Context())
		if err != nil {
			return err
		}
		if summary, _ := cmd.Flags().GetBool("summary"); summary {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  credits=%.2f  emails=%d  files=%d  contacts=%d  logs=%d\n",
				state.User.Name, state.User.Credits, len(state.Emails), len(state.Files), len(state.Contacts), len(state.Logs))
			return nil
		}
		out, err := yaml.Marshal(state)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the persisted operator session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(cfg.StoragePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := shell.NewRouter(store, logger).Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session cleared")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Shell config file (default "+paths.ShellConfig()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	stateCmd.Flags().Bool("summary", false, "Print a one-line summary instead of YAML")

	rootCmd.AddCommand(probeCmd, stateCmd, logoutCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newProber() *discovery.Prober {
	fallback := cfg.APIBase
	candidates := cfg.ProbeCandidates()
	if fallback == "" && len(candidates) > 0 {
		fallback = candidates[0]
	}
	p := discovery.NewProber(candidates,
		discovery.WithLogger(logger),
		discovery.WithFallback(fallback))
	p.Timeout = cfg.ProbeTimeout
	return p
}

// connect discovers a relay and returns a client pointed at it. A failed
// discovery still yields a client on the fallback base.
func connect(ctx context.Context) (*client.Client, *discovery.Prober) {
	prober := newProber()
	base, err := prober.Discover(ctx)
	if err != nil {
		logger.Warn("Using fallback relay", zap.String("base", base), zap.Error(err))
	}
	return client.New(base, client.WithTimeout(cfg.RequestTimeout)), prober
}

// newMonitor builds the sidebar monitor: a health check plus a full state
// fetch on every tick.
func newMonitor(source discovery.Source, interval time.Duration, logger *zap.Logger) *discovery.Monitor {
	m := discovery.NewMonitor(source, interval, logger)
	m.FetchState = true
	return m
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := storage.OpenSQLite(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	router := shell.NewRouter(store, logger)
	if err := router.Restore(); err != nil {
		logger.Warn("Discarded persisted session", zap.Error(err))
	}

	relay, prober := connect(ctx)
	monitor := newMonitor(relay, cfg.HealthInterval, logger)

	model := shell.New(shell.Options{
		Router:   router,
		Registry: panels.Registry(),
		Deps: panels.Deps{
			Relay:        relay,
			Devices:      media.NewLinux(),
			Logger:       logger,
			Timeout:      cfg.RequestTimeout,
			Latitude:     cfg.Latitude,
			Longitude:    cfg.Longitude,
			AssetsDir:    cfg.AssetsDir,
			HomeInterval: cfg.HomeInterval,
			Speech:       cfg.Speech,
		},
		Prober:  prober,
		Monitor: monitor,
		Relay:   relay,
		Logger:  logger,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(runCtx))

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return monitor.Run(gctx, func(u discovery.Update) {
			p.Send(shell.StatusMsg{Update: u})
		})
	})

	final, runErr := p.Run()
	cancel()
	if m, ok := final.(shell.Model); ok {
		m.Close()
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Health monitor stopped", zap.Error(err))
	}

	switch {
	case runErr == nil:
	case errors.Is(runErr, tea.ErrInterrupted), errors.Is(runErr, tea.ErrProgramKilled):
		logger.Info("Shell interrupted", zap.Error(runErr))
	default:
		return runErr
	}
	logger.Info("Shell stopped")
	return nil
}
