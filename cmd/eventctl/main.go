package main

import (
	"context"
	"fmt"
	"os"

	"sueta_backend/internal/app"
	"sueta_backend/internal/config"
	"sueta_backend/internal/database"
	"sueta_backend/internal/logger"
	"sueta_backend/internal/report"

	"github.com/spf13/pflag"
	"gorm.io/gorm"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printHelp()
		return nil
	}

	command, args := args[0], args[1:]

	flagSet := pflag.NewFlagSet(command, pflag.ContinueOnError)
	configPath := flagSet.StringP("config", "c", "", "path to YAML config")

	var username, status, out string
	switch command {
	case "promote":
		flagSet.StringVar(&username, "username", "", "user to promote to admin")
	case "export":
		flagSet.StringVar(&status, "status", "", "ticket status filter: paid, not_paid, rejected")
		flagSet.StringVarP(&out, "out", "o", report.FileName, "output file")
	case "migrate":
	default:
		printHelp()
		return fmt.Errorf("unknown command: %s", command)
	}

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Server.Env)

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx := context.Background()
	switch command {
	case "promote":
		if err := app.PromoteAdmin(ctx, db, username); err != nil {
			return err
		}
		fmt.Printf("%s is now an admin\n", username)
	case "export":
		return export(ctx, db, cfg, status, out)
	case "migrate":
		if err := database.Migrate(db); err != nil {
			return err
		}
		fmt.Println("migrations applied")
	}
	return nil
}

func export(ctx context.Context, db *gorm.DB, cfg *config.Config, status, out string) error {
	data, rows, err := app.ExportUsers(ctx, db, status, cfg.Ticket.Price)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("exported %d users to %s\n", rows, out)
	return nil
}

func printHelp() {
	fmt.Fprint(os.Stderr, `eventctl - operator tool for the event site.

Usage:
  eventctl promote --username USER [--config FILE]
  eventctl export [--status paid|not_paid|rejected] [--out users.xlsx] [--config FILE]
  eventctl migrate [--config FILE]
`)
}
