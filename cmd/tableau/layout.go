package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <document>",
	Short: "Re-run group layout and save the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd, nil)
		if err != nil {
			return err
		}
		defer eng.Close()

		n, err := eng.Layout(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Laid out %d group(s) in %s\n", n, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}
