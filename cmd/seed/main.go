// Command seed заполняет базу демо тренером и атлетом и печатает их учётные данные.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"athletics-backend/config"
	"athletics-backend/database"

	"github.com/fatih/color"
)

func main() {
	if err := run(); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	log := config.NewLogger(cfg)

	db, err := database.Open(cfg, log)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.SQL, log); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	accounts, err := database.Seed(ctx, db, log)
	if err != nil {
		return fmt.Errorf("seeding demo data: %w", err)
	}

	printAccounts(color.Output, accounts)
	return nil
}

func printAccounts(w io.Writer, accounts []database.SeedAccount) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintln(w, "\n🌱 Demo accounts")
	for _, acc := range accounts {
		status := color.GreenString("created")
		if !acc.Created {
			status = color.YellowString("already existed")
		}
		fmt.Fprintf(w, "  %-8s %-22s %-20s %s\n", acc.Role, acc.Email, acc.Name, status)
	}
	cyan.Fprintf(w, "  password: %s\n\n", database.SeedPassword)
}
