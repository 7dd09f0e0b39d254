package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/logger"
	"github.com/hpungsan/tally/internal/mcp"
	"github.com/hpungsan/tally/internal/metrics"
	"github.com/hpungsan/tally/internal/ops"
	"github.com/hpungsan/tally/internal/store"
	"github.com/hpungsan/tally/internal/web"
)

// newCLIApp creates the CLI application with all commands.
// stdin is nil when nothing is piped in.
func newCLIApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      "tally",
		Usage:     "String analysis service",
		Version:   Version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   defaultConfigDir(),
				EnvVars: []string{"TALLY_CONFIG_DIR"},
				Usage:   "Directory holding config.{json,yaml,toml}",
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			mcpCmd(),
			analyzeCmd(stdin),
			translateCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Interface to listen on"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on"},
			&cli.StringFlag{Name: "store", Aliases: []string{"s"}, Usage: "Store backend: memory|sqlite"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("bind") {
				cfg.Bind = c.String("bind")
			}
			if c.IsSet("port") {
				cfg.Port = c.Int("port")
			}
			if c.IsSet("store") {
				cfg.Store = c.String("store")
			}
			if err := cfg.Validate(); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			log := newLogger(c, cfg)
			srv, st, err := newHTTPServer(cfg, log)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer st.Close()

			if err := web.Run(srv, log, cfg.ShutdownTimeout); err != nil && err != http.ErrServerClosed {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve MCP tools over stdio",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			log := newLogger(c, cfg)
			warnUnknownDisabled(log, cfg)

			st, err := store.Open(cfg.Store)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer st.Close()

			log.Info().Str("store", cfg.Store).Msg("mcp server starting on stdio")
			return mcp.Run(st, cfg, Version)
		},
	}
}

// analyzeCmd creates the analyze command.
func analyzeCmd(stdin io.Reader) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze a string without storing it (reads stdin when no argument is given)",
		ArgsUsage: "[text]",
		Action: func(c *cli.Context) error {
			var value string
			switch {
			case c.NArg() > 0:
				value = strings.Join(c.Args().Slice(), " ")
			case stdin != nil:
				data, err := io.ReadAll(stdin)
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				value = trimNewline(string(data))
			default:
				return outputError(errors.NewInvalidInput("text must be given as an argument or piped via stdin"))
			}

			output, err := ops.Analyze(nil, ops.CreateInput{Value: value, Provided: true})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// translateCmd creates the translate command.
func translateCmd() *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Usage:     "Show the filters a natural-language query translates to",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			output, err := ops.Translate(strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// newHTTPServer opens the configured store and builds the HTTP server around it.
func newHTTPServer(cfg *config.Config, log zerolog.Logger) (*http.Server, store.Store, error) {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	srv := web.NewServer(st, cfg, logger.Component(log, "http"), metrics.New(), Version)
	return srv, st, nil
}

// Helper functions

func defaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".tally")
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config-dir"))
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("failed to load config: %v", err), 1)
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: c.App.ErrWriter,
	}).With().Str("version", Version).Logger()
}

// warnUnknownDisabled logs disabled tool and type names that match nothing.
func warnUnknownDisabled(log zerolog.Logger, cfg *config.Config) {
	for _, name := range mcp.ValidateDisabledTools(cfg.DisabledTools) {
		log.Warn().Str("tool", name).Msg("unknown tool in disabled_tools")
	}
	for _, name := range mcp.ValidateDisabledTypes(cfg.DisabledTypes) {
		log.Warn().Str("type", name).Msg("unknown type in disabled_types")
	}
}

// outputJSON writes v to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// trimNewline drops one trailing line ending added by echo or a heredoc.
func trimNewline(s string) string {
	if t, ok := strings.CutSuffix(s, "\n"); ok {
		return strings.TrimSuffix(t, "\r")
	}
	return s
}
