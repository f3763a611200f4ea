package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/schema"
)

// stdio is the path that selects stdin or stdout.
const stdio = "-"

// documentFormat picks the format of path: the --format flag wins, then the
// file extension, then the configured default for stdin.
func documentFormat(cmd *cobra.Command, path string) (schema.Format, error) {
	if cmd.Flags().Changed("format") {
		s, _ := cmd.Flags().GetString("format")
		return schema.ParseFormat(s)
	}
	if path == "" || path == stdio {
		return schema.ParseFormat(cfg.Format)
	}
	return schema.FormatFromPath(path), nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == stdio {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == stdio {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// loadProject reads and decodes the document at path.
func loadProject(cmd *cobra.Command, path string) (*domain.Project, schema.Format, error) {
	format, err := documentFormat(cmd, path)
	if err != nil {
		return nil, "", err
	}
	data, err := readInput(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read document: %w", err)
	}
	p, err := schema.Decode(data, format)
	if err != nil {
		return nil, format, err
	}
	return p, format, nil
}

func argOrStdin(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return stdio
}
