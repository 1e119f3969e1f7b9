package main

import (
	"context"
	"fmt"
	"os"
	"time"

	mongoMigration "studio/internal/migrations/mongo"
	"studio/pkg/config"

	"github.com/urfave/cli/v2"
)

const JobName = "studio-migrate"

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "create the studio collections and indexes, then optionally load seed content",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "seed",
				Usage: "path to a YAML seed file to upsert after migrating",
			},
			&cli.BoolFlag{
				Name:  "default-seed",
				Usage: "upsert the built-in demo content after migrating",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 120 * time.Second,
				Usage: "overall deadline for the job",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "migration failed:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.IsSet("seed") && c.Bool("default-seed") {
		return fmt.Errorf("--seed and --default-seed are mutually exclusive")
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		return err
	}

	seed, err := loadSeed(c)
	if err != nil {
		return err
	}
	if seed != nil {
		if err := mongoMigration.ApplySeed(ctx, db, seed, cfg.Log); err != nil {
			return err
		}
	}

	cfg.Log.Info("Migration completed successfully")
	return nil
}

// loadSeed returns nil when no seed was requested.
func loadSeed(c *cli.Context) (*mongoMigration.Seed, error) {
	if c.Bool("default-seed") {
		return mongoMigration.DefaultSeed()
	}

	path := c.String("seed")
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	return mongoMigration.LoadSeed(f)
}
