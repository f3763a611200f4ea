package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicx/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [document]",
	Short: "Check a project document for consistency",
	Long: `Decodes the document and reports every schema violation, unknown
template or instance reference and out-of-range terminal it finds.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := argOrStdin(args, 0)
		p, _, err := loadProject(cmd, path)
		if err != nil {
			details := schema.ValidationErrors(err)
			if len(details) == 0 {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d problem(s)\n", path, len(details))
			for _, d := range details {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %v\n", d)
			}
			return fmt.Errorf("validation failed")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Project is valid! ✅ (%d instances, %d connections)\n",
			p.Len(), p.ConnectionCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
