package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <document>",
	Short: "Create an empty scene document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		if name == "" {
			name = args[0]
		}

		eng, err := newEngine(cmd, nil)
		if err != nil {
			return err
		}
		defer eng.Close()

		if _, err := eng.Workspace().Create(cmd.Context(), args[0], name, width, height); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%dx%d)\n", args[0], width, height)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().String("name", "", "Display name (defaults to the document ID)")
	newCmd.Flags().Int("width", 800, "Scene width")
	newCmd.Flags().Int("height", 600, "Scene height")
}
