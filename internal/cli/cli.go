// Package cli implements the closet command-line interface.
//
// Commands evaluate closet DSL files, list their separators and export the
// result as JSON meshes or an STL file of the panels.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
//
// # Configuration
//
// Preferences are read from --config, or from
// $XDG_CONFIG_HOME/closet/config.toml when the flag is absent. A missing file
// means defaults.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chazu/closet/internal/app"
	"github.com/chazu/closet/pkg/config"
	"github.com/chazu/closet/pkg/engine"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the closet CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

// cli holds state shared by all commands once flags are parsed.
type cli struct {
	config config.Config
}

// NewRootCommand builds the command tree. Logs go to logw; command output
// goes to the command's OutOrStdout.
func NewRootCommand(logw io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)
	c := &cli{config: config.Default()}

	root := &cobra.Command{
		Use:          "closet",
		Short:        "Closet builds closet layouts from a small Lisp DSL",
		Long:         `Closet evaluates layout scripts that seed a compartment and push new ones from its faces, sharing separator panels between neighbours.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(logw, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("closet %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/closet/config.toml)")

	root.AddCommand(c.evalCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.separatorsCommand())

	return root
}

// loadConfig reads path, or the XDG default when path is empty. A missing
// file means defaults at either location; a file that exists but cannot be
// parsed or validated is an error wherever it lives.
func loadConfig(path string, logger *charmlog.Logger) (config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Debug("no config directory, using defaults", "err", err)
			return config.Default(), nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// newApp builds the pipeline from the loaded config.
func (c *cli) newApp(ctx context.Context) (*app.App, error) {
	opts, err := c.config.EngineOptions()
	if err != nil {
		return nil, err
	}
	k, err := c.config.Kernel()
	if err != nil {
		return nil, err
	}
	eng := engine.NewEngine(engine.WithOptions(opts))
	return app.New(eng, k, loggerFromContext(ctx)), nil
}

// readSource reads a DSL file, or stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// reportErrors logs every error in result and returns a summary error.
func reportErrors(logger *charmlog.Logger, path string, result app.EvalResult) error {
	for _, e := range result.Errors {
		if e.Line > 0 {
			logger.Error(e.Message, "file", path, "line", e.Line)
		} else {
			logger.Error(e.Message, "file", path)
		}
	}
	return fmt.Errorf("%s: evaluation failed with %d error(s)", path, len(result.Errors))
}

func reportWarnings(logger *charmlog.Logger, path string, result app.EvalResult) {
	for _, w := range result.Warnings {
		logger.Warn(w.Message, "file", path)
	}
}
