package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/logicx/internal/presentation/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [document]",
	Short: "Summarize templates, placements and connections",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := loadProject(cmd, argOrStdin(args, 0))
		if err != nil {
			return err
		}

		md := tui.ProjectMarkdown(p)
		plain, _ := cmd.Flags().GetBool("plain")
		if fd := int(os.Stdout.Fd()); !plain && term.IsTerminal(fd) {
			var opts []glamour.TermRendererOption
			if width, _, err := term.GetSize(fd); err == nil && width > 0 {
				opts = append(opts, glamour.WithWordWrap(width))
			}
			render := tui.NewRenderer(opts...)
			if out, err := render(md); err == nil {
				md = out
			} else {
				logger.Warn("markdown render failed", "error", err)
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
}
