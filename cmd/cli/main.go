package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host    string
	rawJSON bool
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "handballito",
	Short: "A CLI to interact with the HandballitoTime server",
	Long: `A command-line interface for recording matches and reading the stats
served by the HandballitoTime application.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&rawJSON, "json", false, "Print the raw JSON response instead of tables")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
