package main

import (
	"fmt"
	"os"

	"sueta_backend/internal/app"

	"github.com/spf13/pflag"
)

func main() {
	flagSet := pflag.NewFlagSet("web", pflag.ContinueOnError)
	configPath := flagSet.StringP("config", "c", "", "path to YAML config (default: $CONFIG_PATH or config/config.yaml)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := app.Run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
