package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mapsrc/route"
	mapslog "github.com/fwojciec/mapsrc/slog"
	"github.com/fwojciec/mapsrc/source"
	"github.com/fwojciec/mapsrc/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); the --db flag overrides it.
	DBPath string

	// SQLite database used by the content store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mapsrc"),
		kong.Description("Build sitemaps from a content database"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mapsrc --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MAPSRC_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	menu, err := route.ParseMenu(cli.Menu)
	if err != nil {
		return err
	}

	store := sqlite.NewContentStore(m.DB, cli.Extension)
	routes := mapslog.NewLoggingRouteResolver(route.NewResolver(menu), deps.Logger)

	deps.Store = store
	deps.SourceName = cli.Extension
	deps.Source = mapslog.NewLoggingSource(&source.Adapter{
		Store:  store,
		Routes: routes,
		Domain: cli.Extension,
	}, cli.Extension, deps.Logger)

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("MAPSRC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "mapsrc.db"
	}
	dir := filepath.Join(home, ".mapsrc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "content.db")
}
