package command

import (
	"github.com/spf13/cobra"

	"github.com/metabolic-health/coach/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analytics API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The server keeps the log level of its environment
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) { api.MainLoop() },
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
