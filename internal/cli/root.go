package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/s22625/lazyq/internal/client"
	"github.com/s22625/lazyq/internal/config"
	"github.com/s22625/lazyq/internal/monitor"
	"github.com/s22625/lazyq/internal/session"
)

// GlobalOptions holds options shared across all commands.
type GlobalOptions struct {
	Socket  string
	LogFile string
}

var globalOpts = &GlobalOptions{}

// rootCmd launches the interactive dashboard.
var rootCmd = &cobra.Command{
	Use:   "lazyq",
	Short: "A lazygit-style terminal UI for the queued task daemon",
	Long: `lazyq mirrors the state of a queued daemon and lets you act on it from
the keyboard: kill, pause, restart, add, remove, stash and reorder tasks,
inspect their logs, and manage group parallelism.

The daemon owns scheduling and persistence; lazyq only talks to its socket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.Socket, "socket", "", "Path to the daemon socket (or set LAZYQ_SOCKET)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.LogFile, "log-file", "", "Write debug logs to this file")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newCleanCmd())
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if globalOpts.Socket != "" {
		cfg.Socket = config.ExpandPath(globalOpts.Socket)
	}
	if globalOpts.LogFile != "" {
		cfg.LogFile = config.ExpandPath(globalOpts.LogFile)
	}
	return cfg, nil
}

// dial connects to the daemon using the resolved socket path.
func dial(cfg *config.Config) (*client.Client, error) {
	if cfg.Socket == "" {
		return nil, fmt.Errorf("daemon socket path not set (use --socket or LAZYQ_SOCKET)")
	}
	return client.Dial(cfg.Socket)
}

func runDashboard() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal; use 'lazyq status' for scripted output")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "lazyq")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	c, err := dial(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	ctrl := session.New(c)
	dashboard := monitor.NewDashboard(ctrl, monitor.Options{
		RefreshInterval: cfg.RefreshInterval,
		FollowInterval:  cfg.FollowInterval,
		SettingsDir:     config.ConfigDir(),
	})
	return dashboard.Run()
}
