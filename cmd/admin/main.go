package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"wisewallet/internal/domain/record"
	"wisewallet/internal/infrastructure/postgres"
	"wisewallet/internal/shared/auth"
	"wisewallet/internal/shared/config"
	"wisewallet/internal/shared/logging"
)

const usage = `WiseWallet Admin CLI - Management commands for the WiseWallet API

Usage:
  admin <command> [options]

Commands:
  migrate   Apply database migrations
  token     Mint a bearer token for a user (development only)
  stats     Print income and expense stats for one or more users

Examples:
  # Apply migrations to the configured database
  admin migrate

  # Mint a token valid for one hour
  admin token --user=alice --name=Alice --ttl=1h

  # Print stats for several users
  admin stats --user=alice,bob --workers=4
`

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	config.LoadDotEnv()

	command := os.Args[1]

	var err error
	switch command {
	case "migrate":
		err = runMigrate(os.Args[2:])
	case "token":
		err = runToken(os.Args[2:], os.Stdout)
	case "stats":
		err = runStats(os.Args[2:], os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage(os.Stdout)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, usage)
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.NewWithWriter(os.Stderr, config.LoggingConfig{Level: cfg.Logging.Level, Format: "text"})
	return cfg, logger, nil
}

func runMigrate(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println("Usage: admin migrate")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate requires DB_DRIVER=%s", config.DriverPostgres)
	}

	start := time.Now()
	if err := postgres.Migrate(cfg.Database.ConnectionString()); err != nil {
		return err
	}
	logger.Info("migrations applied", "elapsed", time.Since(start))
	return nil
}

func runToken(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)

	userID := fs.String("user", "", "User ID to put in the token subject")
	name := fs.String("name", "", "Display name claim")
	ttl := fs.Duration("ttl", auth.DefaultTTL, "Token lifetime (e.g., 1h, 24h)")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: admin token --user=<id> [--name=<name>] [--ttl=24h]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		fs.Usage()
		return fmt.Errorf("must specify --user")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	token, err := auth.NewJWT(cfg.JWT.Secret).Generate(*userID, *name, *ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, token)
	return nil
}

func runStats(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)

	usersFlag := fs.String("user", "", "User ID(s) (comma-separated for multiple)")
	workers := fs.Int("workers", 4, "Number of concurrent workers")
	timeout := fs.Duration("timeout", 5*time.Minute, "Timeout for the operation (e.g., 5m, 1h)")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: admin stats --user=<id>[,<id>...] [--workers=4] [--timeout=5m]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	userIDs := parseUserIDs(*usersFlag)
	if len(userIDs) == 0 {
		fs.Usage()
		return fmt.Errorf("must specify --user")
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("stats requires DB_DRIVER=%s", config.DriverPostgres)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.ConnectionString(), postgres.DefaultPool)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("connected to database")

	repo := postgres.NewRecordRepository(db)
	services := []*record.Service{
		record.NewService(record.Income, repo, nil, logger),
		record.NewService(record.Expense, repo, nil, logger),
	}

	start := time.Now()
	results, err := collectStats(ctx, services, userIDs, *workers)
	if err != nil {
		return err
	}

	for _, uid := range userIDs {
		printStats(out, uid, services, results[uid])
	}
	logger.Info("stats completed", "users", len(userIDs), "elapsed", time.Since(start))
	return nil
}

// collectStats loads per-kind stats for every user with at most workers
// users in flight.
func collectStats(ctx context.Context, services []*record.Service, userIDs []string, workers int) (map[string][]record.Stats, error) {
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	results := make(map[string][]record.Stats, len(userIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, uid := range userIDs {
		g.Go(func() error {
			perKind := make([]record.Stats, len(services))
			for i, svc := range services {
				stats, err := svc.Stats(gctx, uid)
				if err != nil {
					return fmt.Errorf("stats for %s: %w", uid, err)
				}
				perKind[i] = stats
			}

			mu.Lock()
			results[uid] = perKind
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printStats(out io.Writer, userID string, services []*record.Service, perKind []record.Stats) {
	fmt.Fprintf(out, "\n=== User %s ===\n", userID)
	for i, svc := range services {
		stats := perKind[i]
		fmt.Fprintf(out, "  %-8s total: %s (%d records)\n", svc.Kind().Label, stats.Total.StringFixed(2), stats.Count)
		for _, category := range svc.Kind().Categories {
			if amount, ok := stats.ByCategory[category]; ok {
				fmt.Fprintf(out, "    - %-14s %s\n", category, amount.StringFixed(2))
			}
		}
	}
}

func parseUserIDs(s string) []string {
	var ids []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
