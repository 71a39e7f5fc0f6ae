package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tableau/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <document>",
	Short: "Summarize a scene document",
	Long:  `Prints the resource library with clone counts and, per scene, every object with its kind, rectangle, resource and action count.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		eng, err := newEngine(cmd, nil)
		if err != nil {
			return err
		}
		defer eng.Close()

		report, err := eng.Report(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if raw || !isTerminal(out) {
			fmt.Fprint(out, report)
			return nil
		}

		tui.PrintBanner(out)
		rendered, err := tui.NewRenderer("")(report)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
