package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/k3ng-tools/rotorconf-go/pkg/board"
	"github.com/k3ng-tools/rotorconf-go/pkg/config"
)

// boardsCmd represents the boards command.
var boardsCmd = &cobra.Command{
	Use:   "boards [board-id]",
	Short: "List known boards or show one board's pin map",
	Long: `Without an argument, boards lists every known board identifier.
With a board identifier, it shows the board's pin counts, capability
classes, and reserved pins.

Example:
  rotorconf boards
  rotorconf boards arduino_uno`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		boards := board.Builtin()
		if dir := viper.GetString("boards.dir"); dir != "" {
			if err := boards.LoadDir(dir); err != nil {
				return err
			}
		}

		if len(args) == 0 {
			for _, id := range boards.IDs() {
				b, err := boards.Board(id)
				if err != nil {
					return err
				}
				fmt.Printf("%-24s %s (%s)\n", id, b.Name, b.MCU)
			}
			return nil
		}

		b, err := boards.Board(args[0])
		if err != nil {
			return err
		}
		printBoard(os.Stdout, b)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}

func printBoard(w io.Writer, b *board.Board) {
	fmt.Fprintf(w, "%s (%s)\n", b.Name, b.MCU)
	fmt.Fprintf(w, "  digital pins:   0-%d\n", b.DigitalPins-1)
	if b.AnalogPins > 0 {
		fmt.Fprintf(w, "  analog pins:    A0-A%d\n", b.AnalogPins-1)
	}
	fmt.Fprintf(w, "  pwm pins:       %s\n", joinPins(b.PinsWithCapability(board.CapPWM)))
	fmt.Fprintf(w, "  interrupt pins: %s\n", joinPins(b.PinsWithCapability(board.CapInterrupt)))

	reserved := b.ReservedPins()
	if len(reserved) > 0 {
		fmt.Fprintln(w, "  reserved:")
		for _, r := range reserved {
			fmt.Fprintf(w, "    %-4s %s\n", r.Pin, r.Tag)
		}
	}
}

func joinPins(pins []config.Pin) string {
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
