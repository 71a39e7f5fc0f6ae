package main

import (
	"fmt"

	"github.com/aretw0/tableau/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Check a scene document for consistency",
	Long:  `Reports malformed fields, duplicate names, dangling resource references and unknown action kinds.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd, nil)
		if err != nil {
			return err
		}
		defer eng.Close()

		out := cmd.OutOrStdout()
		err = eng.Validate(cmd.Context(), args[0])
		problems := schema.ValidationErrors(err)
		if err != nil && len(problems) == 0 {
			return err
		}
		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintf(out, "  - %v\n", p)
			}
			return fmt.Errorf("validation failed: %d problem(s)", len(problems))
		}
		fmt.Fprintln(out, "Document is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
