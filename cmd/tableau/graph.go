package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <document>",
	Short: "Export the resource graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the library, every scene, group containment and clone links.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		highlight, _ := cmd.Flags().GetStringSlice("highlight")

		eng, err := newEngine(cmd, nil)
		if err != nil {
			return err
		}
		defer eng.Close()

		output, err := eng.Graph(cmd.Context(), args[0], highlight...)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("highlight", nil, "Objects to highlight, as scene/object or library/resource")
}
