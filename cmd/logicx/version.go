package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicx"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of logicx",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "logicx version %s\n", strings.TrimSpace(logicx.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
