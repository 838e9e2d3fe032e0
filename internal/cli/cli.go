// Package cli implements the eterm maintenance command line: inspecting,
// validating, and pruning persisted session snapshots.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/vimo-ai/eterm/internal/appconfig"
	"github.com/vimo-ai/eterm/internal/identity"
	"github.com/vimo-ai/eterm/internal/logging"
)

// Dependencies provides external services for CLI handlers.
type Dependencies struct {
	Version string
	AppName string

	Stdout io.Writer
	Stderr io.Writer
}

// DefaultDependencies returns dependencies wired to the real process.
func DefaultDependencies(version string) Dependencies {
	return Dependencies{
		Version: version,
		AppName: identity.CLIName,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run starts the CLI and returns the process exit code.
func Run(args []string, version string) int {
	deps := DefaultDependencies(version)

	logCfg := logging.Config{}
	if configPath, err := appconfig.DefaultPath(); err == nil && configPath != "" {
		if cfg, err := appconfig.NewLoader(configPath).Load(); err == nil {
			logCfg = cfg.Logging
		} else {
			fmt.Fprintf(deps.Stderr, "%s: load config: %v\n", deps.AppName, err)
			return 1
		}
	}
	closeLogger, err := logging.Init(logCfg, logging.InitOptions{
		App:     identity.AppSlug,
		Version: version,
		Mode:    logging.ModeCLI,
	})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	cmd := BuildCommand(deps)
	if err := cmd.Run(context.Background(), args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintf(deps.Stderr, "%s: %s\n", deps.AppName, msg)
			}
			return exitErr.ExitCode()
		}
		fmt.Fprintf(deps.Stderr, "%s: %v\n", deps.AppName, err)
		return 1
	}
	return 0
}
