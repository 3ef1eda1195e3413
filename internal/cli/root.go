package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/artpar/kvdraft/internal/config"
	"github.com/artpar/kvdraft/internal/core"
	"github.com/artpar/kvdraft/internal/history/sqlite"
	"github.com/artpar/kvdraft/internal/logger"
	"github.com/artpar/kvdraft/internal/tui/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Workspace  string

	version string
	cfg     config.Config
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{version: version}

	cmd := &cobra.Command{
		Use:     "kvdraft",
		Short:   "kvdraft - request draft editor for the terminal",
		Long:    "kvdraft edits API request drafts: params, headers, bodies and auth, with bulk text editing and URL history.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so it logs to a file.
			return opts.load(cmd == cmd.Root())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVarP(&opts.Workspace, "workspace", "w", "", "Workspace scoping the URL history")

	cmd.AddCommand(NewBulkCommand())
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewFormatJSONCommand())
	cmd.AddCommand(NewFormatErrorCommand())

	return cmd
}

// load reads the config file and applies the flag overrides, then sets up
// the global logger.
func (o *RootOptions) load(logToFile bool) error {
	path := o.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if o.Workspace != "" {
		cfg.Workspace = o.Workspace
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	o.cfg = cfg

	logOpts := logger.Options{Level: cfg.Log.Level, Version: o.version}
	if logToFile {
		logOpts.File = cfg.Log.File
	}
	if _, err := logger.Setup(logOpts); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}

// Config returns the loaded configuration.
func (o *RootOptions) Config() config.Config { return o.cfg }

// openStore opens the history database, creating its directory.
func (o *RootOptions) openStore() (*sqlite.Store, error) {
	path := o.cfg.History.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return sqlite.New(path)
}

// tuiModel wraps the MainView for bubbletea
type tuiModel struct {
	view *views.MainView
}

func (m tuiModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.view.Update(msg)
	m.view = updated.(*views.MainView)
	return m, cmd
}

func (m tuiModel) View() string {
	return m.view.View()
}

// runTUI starts the TUI application
func runTUI(opts *RootOptions) error {
	log := logger.Named("cli")

	store, err := opts.openStore()
	if err != nil {
		// URL suggestions degrade to none without a history store.
		log.Error(err, "history store unavailable", "path", opts.cfg.History.Path)
	} else {
		defer store.Close()
	}

	viewOpts := views.Options{
		Tabs:         core.NewTabs(),
		WorkspaceID:  opts.cfg.Workspace,
		SuggestLimit: opts.cfg.Suggest.Limit,
		BlurGrace:    opts.cfg.Suggest.BlurGrace,
		PageSize:     opts.cfg.History.PageSize,
		Log:          &log,
	}
	if store != nil {
		viewOpts.Store = store
	}

	model := tuiModel{view: views.NewMainView(viewOpts)}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}
	return nil
}
