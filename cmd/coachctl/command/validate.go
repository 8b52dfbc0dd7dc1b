package command

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/metabolic-health/coach/api"
	"github.com/metabolic-health/coach/entries"
)

var (
	validateType  string
	validateValue string
	validateUnit  string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Normalize and validate a single value",
	Long:  "The validate command converts a value to storage units and checks it against the physiologic range of its type. Blood pressure is given as systolic/diastolic, e.g. 120/80",
	RunE:  func(cmd *cobra.Command, args []string) error { return validate(time.Now()) },
}

func validate(now time.Time) error {
	request := api.NormalizeRequest{
		Type:  entries.MetricType(strings.ToUpper(validateType)),
		Value: parseValueFlag(validateValue),
		Unit:  validateUnit,
	}

	normalized, err := api.Normalize(request, now)
	if err != nil {
		return fmt.Errorf("rejected: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(normalized)
}

// parseValueFlag turns "120/80" into a blood pressure object and keeps anything
// else as a string for weak decoding.
func parseValueFlag(value string) interface{} {
	if systolic, diastolic, ok := strings.Cut(value, "/"); ok {
		return map[string]interface{}{
			"systolic":  strings.TrimSpace(systolic),
			"diastolic": strings.TrimSpace(diastolic),
		}
	}
	return strings.TrimSpace(value)
}

func init() {
	validateCmd.Flags().StringVar(&validateType, "type", "", "Metric type: GLUCOSE, BP, WEIGHT, WAIST or KETONES")
	validateCmd.Flags().StringVar(&validateValue, "value", "", "Value in the given unit")
	validateCmd.Flags().StringVar(&validateUnit, "unit", "", "Unit of the value, defaults to the storage unit")
	rootCmd.AddCommand(validateCmd)
}
