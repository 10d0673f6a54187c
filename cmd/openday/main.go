package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile bool

var rootCmd = &cobra.Command{
	Use:   "openday",
	Short: "IBM Journey Open Day enrollment service",
	Long: `openday runs the Open Day enrollment API backed by a Google Sheet.

Configuration comes from the environment, optionally loaded from .env.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&envFile, "dotenv", true, "Load .env from the working directory when present")
	rootCmd.AddCommand(serveCmd, rosterCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
