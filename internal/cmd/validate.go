package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/k3ng-tools/rotorconf-go/pkg/check"
	"github.com/k3ng-tools/rotorconf-go/pkg/config"
)

// ErrValidationFailed marks a run where the configuration was checked
// successfully but found invalid. main translates it to a distinct exit
// code so scripts can tell invalid input apart from tool failures.
var ErrValidationFailed = errors.New("configuration is invalid")

var (
	validateBoard   string
	validateJSON    bool
	validateVerbose bool
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate <config.yaml>",
	Short: "Validate a configuration against a board",
	Long: `Validate checks a configuration file against the rule model and the
selected board's pin capabilities.

Exit status is 0 when the configuration passes, 2 when it has errors,
and 1 when the tool itself fails (unreadable file, unknown board).

Example:
  rotorconf validate my-rotator.yaml --board arduino_mega_2560`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		eng, err := loadEngine()
		if err != nil {
			return err
		}

		snap, err := config.Load(args[0])
		if err != nil {
			return err
		}

		boardID := resolveBoard(cmd, validateBoard, snap)
		logger.Debug("validating configuration",
			"file", args[0],
			"board", boardID,
			"features", len(snap.Features),
			"options", len(snap.Options),
		)

		result, err := eng.Validate(snap, boardID)
		if err != nil {
			return err
		}

		if validateJSON {
			report := newReport(boardID, snap, result)
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(out))
		} else {
			printResult(args[0], snap, result, validateVerbose)
		}

		if !result.Passed() {
			return ErrValidationFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateBoard, "board", "arduino_mega_2560", "board identifier")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit a JSON report on stdout")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "include a configuration summary")
}

func printResult(path string, snap *config.Snapshot, result *check.Result, verbose bool) {
	if verbose {
		summary := snap.Summarize()
		fmt.Printf("Configuration: %s\n", path)
		fmt.Printf("  Protocol:         %s\n", orNone(summary.Protocol))
		fmt.Printf("  Azimuth sensor:   %s\n", orNone(summary.AzSensor))
		fmt.Printf("  Elevation:        %v\n", summary.HasElevation)
		if summary.HasElevation {
			fmt.Printf("  Elevation sensor: %s\n", orNone(summary.ElSensor))
		}
		fmt.Printf("  Display:          %s\n", orNone(summary.Display))
		fmt.Printf("  Assigned pins:    %d\n", summary.AssignedPins)
		fmt.Println()
	}

	for _, issue := range result.Issues {
		fmt.Println(issue)
	}

	errs, warns, infos := result.Errors(), result.Warnings(), result.Infos()
	if result.Passed() {
		fmt.Printf("PASS: %d warning(s), %d suggestion(s)\n", len(warns), len(infos))
	} else {
		fmt.Printf("FAIL: %d error(s), %d warning(s), %d suggestion(s)\n",
			len(errs), len(warns), len(infos))
	}
	if fixes := result.Fixes(); len(fixes) > 0 {
		fmt.Printf("%d issue(s) can be fixed automatically; run the fix command\n", len(fixes))
	}
}

// Report is the JSON document emitted by validate --json.
type Report struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Board       string        `json:"board"`
	Passed      bool          `json:"passed"`
	Errors      int           `json:"errors"`
	Warnings    int           `json:"warnings"`
	Infos       int           `json:"infos"`
	Summary     ReportSummary `json:"summary"`
	Issues      []ReportIssue `json:"issues,omitempty"`
}

// ReportSummary mirrors the configuration summary in JSON form.
type ReportSummary struct {
	Protocol        string `json:"protocol"`
	AzimuthSensor   string `json:"azimuth_sensor"`
	ElevationSensor string `json:"elevation_sensor,omitempty"`
	Display         string `json:"display"`
	Elevation       bool   `json:"elevation"`
}

// ReportIssue is one finding in JSON form.
type ReportIssue struct {
	Severity   string   `json:"severity"`
	Category   string   `json:"category"`
	RuleID     string   `json:"rule_id,omitempty"`
	Message    string   `json:"message"`
	Features   []string `json:"features,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Fixable    bool     `json:"fixable"`
}

// resolveBoard picks the board identifier: an explicit --board flag wins,
// then the board named in the configuration file, then the flag default.
func resolveBoard(cmd *cobra.Command, flagValue string, snap *config.Snapshot) string {
	if !cmd.Flags().Changed("board") && snap.Board != "" {
		return snap.Board
	}
	return flagValue
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func newReport(boardID string, snap *config.Snapshot, result *check.Result) *Report {
	summary := snap.Summarize()
	report := &Report{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Board:       boardID,
		Passed:      result.Passed(),
		Errors:      len(result.Errors()),
		Warnings:    len(result.Warnings()),
		Infos:       len(result.Infos()),
		Summary: ReportSummary{
			Protocol:        summary.Protocol,
			AzimuthSensor:   summary.AzSensor,
			ElevationSensor: summary.ElSensor,
			Display:         summary.Display,
			Elevation:       summary.HasElevation,
		},
	}
	for _, issue := range result.Issues {
		report.Issues = append(report.Issues, ReportIssue{
			Severity:   issue.Severity.String(),
			Category:   string(issue.Category),
			RuleID:     issue.RuleID,
			Message:    issue.Message,
			Features:   issue.Features,
			Roles:      issue.Roles,
			Suggestion: issue.Suggestion,
			Fixable:    issue.Fix != nil,
		})
	}
	return report
}
