package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// explainCmd represents the explain command.
var explainCmd = &cobra.Command{
	Use:   "explain <feature-or-role>",
	Short: "Show the rules and requirements touching an identifier",
	Long: `Explain shows everything the loaded rule model says about a feature
identifier (dependencies, conflicts, exclusivity groups) or a pin role
(required capability, owning feature).

Example:
  rotorconf explain FEATURE_MOON_TRACKING
  rotorconf explain azimuth_speed_voltage`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		id := args[0]

		// Pin roles are lowercase by convention; feature identifiers are
		// FEATURE_/OPTION_ prefixed. Try both and print whichever matched.
		if _, ok := eng.Requirements().Lookup(id); ok {
			fmt.Println(eng.Requirements().Explain(id))
			return nil
		}

		info := eng.Rules().ExplainFeature(id)
		if len(info.Groups) == 0 && len(info.Requires) == 0 &&
			len(info.RequiresAny) == 0 && len(info.ConflictsWith) == 0 &&
			len(info.AutoEnables) == 0 {
			fmt.Printf("%s: no rules reference this identifier\n", id)
			return nil
		}

		fmt.Println(id + ":")
		if len(info.Groups) > 0 {
			fmt.Printf("  exclusive within: %s\n", strings.Join(info.Groups, ", "))
		}
		if len(info.Requires) > 0 {
			fmt.Printf("  requires: %s\n", strings.Join(info.Requires, ", "))
		}
		if len(info.RequiresAny) > 0 {
			fmt.Printf("  requires one of: %s\n", strings.Join(info.RequiresAny, ", "))
		}
		if len(info.ConflictsWith) > 0 {
			fmt.Printf("  conflicts with: %s\n", strings.Join(info.ConflictsWith, ", "))
		}
		if len(info.AutoEnables) > 0 {
			fmt.Printf("  auto-enables: %s\n", strings.Join(info.AutoEnables, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
