package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/vimo-ai/eterm/internal/appconfig"
	"github.com/vimo-ai/eterm/internal/identity"
	"github.com/vimo-ai/eterm/internal/session"
	"github.com/vimo-ai/eterm/internal/userpath"
)

// BuildCommand constructs the root command tree.
func BuildCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:      identity.CLIName,
		Usage:     "inspect and maintain " + identity.BrandName + " session snapshots",
		Version:   deps.Version,
		Writer:    deps.Stdout,
		ErrWriter: deps.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "session snapshot directory (defaults to the config dir)",
			},
		},
		Commands: []*cli.Command{
			versionCommand(deps),
			configCommand(deps),
			snapshotCommand(deps),
			doctorCommand(deps),
		},
	}
}

func versionCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the CLI version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(deps.Stdout, "%s %s\n", identity.CLIName, deps.Version)
			return err
		},
	}
}

func configCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "show configuration",
		Commands: []*cli.Command{
			{
				Name:  "path",
				Usage: "print the global config file path",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path, err := appconfig.DefaultPath()
					if err != nil {
						return fmt.Errorf("resolve config path: %w", err)
					}
					_, err = fmt.Fprintln(deps.Stdout, userpath.ShortenUser(path))
					return err
				},
			},
		},
	}
}

func snapshotCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "work with the persisted session snapshot",
		Commands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "print the window/page/panel tree of the current snapshot",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := openStore(cmd)
					if err != nil {
						return err
					}
					snap, err := store.Load(ctx)
					if err != nil {
						return err
					}
					return writeInspect(deps, store, snap)
				},
			},
			{
				Name:  "backups",
				Usage: "list the snapshot backup chain",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := openStore(cmd)
					if err != nil {
						return err
					}
					return writeBackups(deps, store)
				},
			},
			{
				Name:  "prune",
				Usage: "drop excess backups and stale quarantined snapshots",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "corrupt-age",
						Usage: "remove quarantined snapshots older than this (e.g. 168h)",
						Value: "168h",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := openStore(cmd)
					if err != nil {
						return err
					}
					age, err := time.ParseDuration(strings.TrimSpace(cmd.String("corrupt-age")))
					if err != nil {
						return fmt.Errorf("invalid --corrupt-age: %w", err)
					}
					if err := store.Prune(age); err != nil {
						return err
					}
					_, err = fmt.Fprintln(deps.Stdout, "pruned")
					return err
				},
			},
		},
	}
}

func doctorCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "check every snapshot file in the chain",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			return runDoctor(deps, store)
		},
	}
}

// openStore resolves the snapshot directory from the --dir flag or the
// global config and opens the store there.
func openStore(cmd *cli.Command) (*session.Store, error) {
	cfg := session.Config{}
	if path, err := appconfig.DefaultPath(); err == nil {
		if loaded, err := appconfig.NewLoader(path).Load(); err == nil {
			cfg = loaded.Session
		}
	}
	if dir := strings.TrimSpace(cmd.String("dir")); dir != "" {
		cfg.Dir = dir
	}
	return session.NewStore(cfg)
}

func runDoctor(deps Dependencies, store *session.Store) error {
	paths := append([]string{store.Path()}, store.Backups()...)
	healthy := 0
	for _, path := range paths {
		status := "ok"
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			status = "missing"
		case err != nil:
			status = "unreadable: " + err.Error()
		default:
			if verr := session.ValidateBytes(data); verr != nil {
				status = "invalid: " + verr.Error()
			} else {
				healthy++
			}
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", padCell(userpath.ShortenUser(path), pathWidth), status)
	}
	if healthy == 0 {
		return cli.Exit("no valid snapshot file found", 1)
	}
	return nil
}
