package main

import (
	"fmt"
	"os"

	"faturas/fatura-csv/cmd/batch"
	"faturas/fatura-csv/cmd/parse"
	"faturas/fatura-csv/cmd/root"
	"faturas/fatura-csv/cmd/summary"
	"faturas/fatura-csv/internal/config"
)

func init() {
	// 1. Load .env silently before viper reads the environment
	config.LoadEnv(nil)

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
