package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/logicx/pkg/schema"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> [output]",
	Short: "Convert a project document between JSON and YAML",
	Long: `Decodes and validates the input document and re-encodes it. The target
format comes from --to, else the output extension, else the format the input
is not in.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, from, err := loadProject(cmd, args[0])
		if err != nil {
			return err
		}
		out := argOrStdin(args, 1)

		to, err := targetFormat(cmd, from, out)
		if err != nil {
			return err
		}
		data, err := schema.Encode(p, to)
		if err != nil {
			return err
		}
		logger.Debug("converted document", "from", from, "to", to, "output", out)
		return writeOutput(out, data)
	},
}

func targetFormat(cmd *cobra.Command, from schema.Format, out string) (schema.Format, error) {
	if cmd.Flags().Changed("to") {
		s, _ := cmd.Flags().GetString("to")
		return schema.ParseFormat(s)
	}
	if out != stdio {
		return schema.FormatFromPath(out), nil
	}
	if from == schema.FormatJSON {
		return schema.FormatYAML, nil
	}
	return schema.FormatJSON, nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("to", "", "Output format (json|yaml)")
}
