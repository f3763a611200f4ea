package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicx/pkg/netlist"
	"github.com/aretw0/logicx/pkg/schema"
)

var connectCmd = &cobra.Command{
	Use:   "connect <document> <netlist>",
	Short: "Apply a netlist of connections to a project document",
	Long: `Parses a netlist ("O0:0 -> I2:0, I2:1" per line) and resolves every
pair against the document. Rejected pairs are reported and skipped. The
updated document is written to --output, or stdout.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, format, err := loadProject(cmd, args[0])
		if err != nil {
			return err
		}

		src, err := readInput(args[1])
		if err != nil {
			return fmt.Errorf("failed to read netlist: %w", err)
		}
		n, err := netlist.Parse(bytes.NewReader(src))
		if err != nil {
			return err
		}

		applied, err := netlist.Apply(p, n)
		if err != nil {
			logger.Warn("netlist pairs rejected", "error", err)
			if strict, _ := cmd.Flags().GetBool("strict"); strict {
				return errors.Join(fmt.Errorf("%d connection(s) applied before rejection", applied), err)
			}
		}
		logger.Info("netlist applied", "connections", applied)

		data, err := schema.Encode(p, format)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("output")
		return writeOutput(out, data)
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().StringP("output", "o", stdio, "Where to write the updated document")
	connectCmd.Flags().Bool("strict", false, "Fail when any pair is rejected")
}
