package cmd

import (
	"os"

	"tripplanner/config"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tripplanner",
	Short: "AI hotel planner: research then plan a stay",
	Long: `An AI travel planner that researches hotel deals for a destination and
shortlists them into a downloadable itinerary.

This tool provides:
- A web form and JSON API (serve)
- A one-shot command line run (plan)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
}
