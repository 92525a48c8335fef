// Command busctl runs the interactive bus reservation menu against the
// configured store.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"busreservation/internal/cli"
	intconfig "busreservation/internal/config"
	"busreservation/internal/repositories"
	"busreservation/internal/services"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "busctl: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags overlays command-line flags on the environment config.
func parseFlags(args []string, env intconfig.Env) (intconfig.Env, error) {
	flagSet := pflag.NewFlagSet("busctl", pflag.ContinueOnError)
	flagSet.StringVar(&env.Store, "store", env.Store, "persistence backend: file, mysql, redis or memory")
	flagSet.StringVar(&env.DataDir, "data-dir", env.DataDir, "directory holding buses.csv and bookings.csv")
	flagSet.StringVar(&env.MySQLDSN, "mysql-dsn", env.MySQLDSN, "MySQL DSN for --store=mysql")
	flagSet.StringVar(&env.RedisAddr, "redis-addr", env.RedisAddr, "Redis address for --store=redis")
	if err := flagSet.Parse(args); err != nil {
		return env, err
	}
	return env, nil
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	env, err := parseFlags(args, intconfig.LoadEnv())
	if err == pflag.ErrHelp {
		return nil
	}
	if err != nil {
		return err
	}

	store, closeStore, err := repositories.Open(ctx, env)
	if err != nil {
		return fmt.Errorf("open %s store: %w", env.Store, err)
	}
	defer closeStore()

	ledger, err := services.NewLedger(ctx, store)
	if err != nil {
		return err
	}
	return cli.NewMenu(ledger, in, out).Run(ctx)
}
