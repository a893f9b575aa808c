package main

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"diabetes-risk/pkg/clients/prediction"
	"diabetes-risk/pkg/models"
	"diabetes-risk/pkg/payload"
	"diabetes-risk/pkg/presentation"
	"diabetes-risk/pkg/services"
	"diabetes-risk/pkg/telemetry"
)

var (
	predictBMI   string
	predictSex   string
	predictAge   string
	predictFlags = map[string]*bool{}
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Submit one survey from the command line and print the result",
	Long: `Sends a single survey to the prediction service and prints the result panel,
or the error panel when the service rejects it.

Example:
  diabetes-risk predict --bmi 31.5 --age 9 --sex 0 --high-bp --smoker`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictBMI, "bmi", "", "body mass index, e.g. 25.5")
	predictCmd.Flags().StringVar(&predictSex, "sex", "1", "1 for male, 0 for female")
	predictCmd.Flags().StringVar(&predictAge, "age", "1", "age group code:\n"+ageHelp())

	for _, field := range payload.CheckboxFields {
		predictFlags[field] = predictCmd.Flags().Bool(flagName(field), false, "answer yes to "+field)
	}
}

// flagName turns a form field name such as hvyAlcoholConsump into hvy-alcohol-consump
func flagName(field string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range field {
		upper := unicode.IsUpper(r)
		if upper && prevLower {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
		prevLower = !upper
	}
	return b.String()
}

func ageHelp() string {
	lines := make([]string, 0, len(models.AgeBrackets))
	for _, bracket := range models.AgeBrackets {
		lines = append(lines, fmt.Sprintf("  %2d = %s", bracket.Code, models.AgeBracketLabel(bracket.Code)))
	}
	return strings.Join(lines, "\n")
}

// predictFields assembles the raw fields exactly as the form would post them
func predictFields() url.Values {
	fields := url.Values{}
	for field, set := range predictFlags {
		if *set {
			fields.Set(field, "on")
		}
	}
	fields.Set(payload.FieldBMI, predictBMI)
	fields.Set(payload.FieldSex, predictSex)
	fields.Set(payload.FieldAge, predictAge)
	return fields
}

func runPredict(cmd *cobra.Command, args []string) error {
	client := prediction.NewClient(cfg.PredictionAPIURL, cfg.PredictionTimeout)
	controller := services.NewFormController(client, telemetry.NewTelemetry())

	state, err := controller.Submit(cmd.Context(), predictFields())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), presentation.RenderTerminal(presentation.Render(state)))
	if state.Status == models.StatusFailed {
		return errPredictionFailed
	}
	return nil
}
