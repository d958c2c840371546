package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/mlund/partdex/internal"
	pkgconfig "github.com/mlund/partdex/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOrDefaults(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runBuild(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithForceRebuild(cmd.Bool("rebuild")),
		internal.WithLimit(int(cmd.Int("limit"))),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("usage: partdex search <query>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Search(ctx, query, int(cmd.Int("limit")), internal.WithConfig(cfg))
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithForceRebuild(cmd.Bool("rebuild")),
		internal.WithLimit(int(cmd.Int("limit"))),
	}
	return internal.Watch(ctx, opts...)
}

func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "rebuild",
			Usage: "Force re-extraction of the library and regeneration of the index",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Limit the number of parts in the catalogue (0 = unlimited)",
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "partdex",
		Usage:  "Materializes an LDraw part library from its archive and builds a deterministic, queryable catalogue",
		Action: runBuild,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		}, buildFlags()...),
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Run the extract-and-index pipeline once",
				Action: runBuild,
				Flags:  buildFlags(),
			},
			{
				Name:      "search",
				Usage:     "Search the part index by name",
				ArgsUsage: "<query>",
				Action:    runSearch,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 20,
					},
				},
			},
			{
				Name:   "watch",
				Usage:  "Build once, then republish the catalogue when the library changes",
				Action: runWatch,
				Flags:  buildFlags(),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
