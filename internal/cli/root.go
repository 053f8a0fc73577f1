// Package cli implements the formvalue commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalue/internal/archive"
	"github.com/goliatone/go-formvalue/internal/prompt"
)

// Environment variables read after the optional .env file is loaded.
const (
	EnvDB     = "FORMVALUE_DB"
	EnvFormat = "FORMVALUE_FORMAT"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// Option customises the command tree, mainly for tests.
type Option func(*app)

// WithDriver replaces the terminal prompt driver used by fill.
func WithDriver(driver prompt.Driver) Option {
	return func(a *app) {
		a.driver = driver
	}
}

// WithEnvFiles sets the dotenv files loaded before each command. Missing
// files are ignored.
func WithEnvFiles(files ...string) Option {
	return func(a *app) {
		a.envFiles = files
	}
}

// WithLogOutput sends log records to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *app) {
		a.logOutput = w
	}
}

type app struct {
	dbPath  string
	format  string
	verbose bool
	timeout time.Duration

	driver    prompt.Driver
	envFiles  []string
	logOutput io.Writer
	logger    *slog.Logger
}

// NewRootCmd builds the formvalue command tree.
func NewRootCmd(options ...Option) *cobra.Command {
	a := &app{envFiles: []string{".env"}, logOutput: os.Stderr}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:           "formvalue",
		Short:         "Encode, fill and archive form submissions",
		Long:          "Load form definitions or OpenAPI operations, fill them from the terminal and archive the encoded submissions in SQLite.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", "Archive path (default: $"+EnvDB+" or ~/.formvalue/submissions.db)")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "", "Output format: json or text (default: $"+EnvFormat+" or json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "Timeout for remote OpenAPI documents")

	root.AddCommand(
		newEncodeCmd(a),
		newFillCmd(a),
		newImportCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context, options ...Option) error {
	return NewRootCmd(options...).ExecuteContext(ctx)
}

func (a *app) setup() error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.logOutput, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	for _, file := range a.envFiles {
		if err := godotenv.Load(file); err != nil {
			a.logger.Debug("env file not loaded", "file", file, "error", err)
			continue
		}
		a.logger.Debug("env file loaded", "file", file)
	}

	if a.format == "" {
		a.format = strings.TrimSpace(os.Getenv(EnvFormat))
	}
	if a.format == "" {
		a.format = formatJSON
	}
	a.format = strings.ToLower(strings.TrimSpace(a.format))
	if a.format != formatJSON && a.format != formatText {
		return fmt.Errorf("unsupported output format %q", a.format)
	}
	return nil
}

func (a *app) archivePath() string {
	if a.dbPath != "" {
		return a.dbPath
	}
	if env := strings.TrimSpace(os.Getenv(EnvDB)); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".formvalue", "submissions.db")
}

func (a *app) openArchive() (*archive.Archive, error) {
	path := a.archivePath()
	a.logger.Debug("opening archive", "path", path)
	return archive.Open(path, archive.WithLogger(a.logger))
}

func (a *app) filler() *prompt.Filler {
	return prompt.NewFiller(a.driver, prompt.WithLogger(a.logger))
}
