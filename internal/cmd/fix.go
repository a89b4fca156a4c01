package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/k3ng-tools/rotorconf-go/pkg/config"
)

var (
	fixBoard   string
	fixOutput  string
	fixInPlace bool
	fixDryRun  bool
)

// fixCmd represents the fix command.
var fixCmd = &cobra.Command{
	Use:   "fix <config.yaml>",
	Short: "Apply automatic fixes to a configuration",
	Long: `Fix validates a configuration and applies every unambiguous automatic
fix, then re-validates and reports what remains. Issues without an
attached fix (collisions, ambiguous exclusivity violations) are left for
manual resolution.

The input file is not modified unless --in-place is given; use --output
to write the fixed configuration elsewhere, or --dry-run to only show
what would change.

Example:
  rotorconf fix my-rotator.yaml --board arduino_uno -o fixed.yaml`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		if fixInPlace && fixOutput != "" {
			return fmt.Errorf("--in-place and --output are mutually exclusive")
		}

		eng, err := loadEngine()
		if err != nil {
			return err
		}
		snap, err := config.Load(args[0])
		if err != nil {
			return err
		}

		boardID := resolveBoard(cmd, fixBoard, snap)
		result, err := eng.Validate(snap, boardID)
		if err != nil {
			return err
		}

		fixes := result.Fixes()
		if len(fixes) == 0 {
			fmt.Println("nothing to fix")
			if !result.Passed() {
				fmt.Printf("%d error(s) need manual resolution\n", len(result.Errors()))
				return ErrValidationFailed
			}
			return nil
		}

		for _, issue := range fixes {
			for _, a := range issue.Fix.Actions {
				fmt.Printf("fix: %s (%s)\n", a, issue.Category)
			}
		}

		fixed := eng.ApplyFixes(snap, result)
		logger.Debug("applied fixes", "count", len(fixes))

		after, err := eng.Validate(fixed, boardID)
		if err != nil {
			return err
		}

		remaining := after.Errors()
		fmt.Printf("applied %d fix(es), %d error(s) remaining\n", len(fixes), len(remaining))
		for _, issue := range remaining {
			fmt.Println(issue)
		}

		if fixDryRun {
			return nil
		}

		out := fixOutput
		if fixInPlace {
			out = args[0]
		}
		if out != "" {
			if err := fixed.Save(out); err != nil {
				return err
			}
			logger.Info("wrote fixed configuration", "path", out)
		}

		if len(remaining) > 0 {
			return ErrValidationFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().StringVar(&fixBoard, "board", "arduino_mega_2560", "board identifier")
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "write the fixed configuration to this path")
	fixCmd.Flags().BoolVar(&fixInPlace, "in-place", false, "overwrite the input file")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "show fixes without writing anything")
}
