package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metabolic-health/coach/analytics"
)

var reportUserId string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a participant report",
	Long:  "The report command computes the adherence, flags, macros and outcomes of one participant and prints them as JSON",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(printReport) },
}

func printReport(service analytics.Service) error {
	if reportUserId == "" {
		return fmt.Errorf("--user is required")
	}

	report, err := service.ParticipantReport(context.TODO(), reportUserId)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func init() {
	reportCmd.Flags().StringVar(&reportUserId, "user", "", "Participant user id")
	rootCmd.AddCommand(reportCmd)
}
