package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicx/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [document]",
	Short: "Export the circuit visualization",
	Long:  `Outputs a Mermaid diagram (graph LR) with one node per placement and one edge per connection.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := loadProject(cmd, argOrStdin(args, 0))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(p, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
