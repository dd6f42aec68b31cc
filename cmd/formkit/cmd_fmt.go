package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/formkit/editor"
)

func newFmtCmd() *cobra.Command {
	var overwrite, check bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a form the way the editing commands print it",
		Long: `Print a form through the printer used by delete, add, move and reparent.
Formatting a form once keeps later edits down to the lines they touch.

Without a file the form is read from stdin. --check reports whether the
file is already formatted and prints nothing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && (overwrite || check) {
				return fmt.Errorf("--write and --check need a file argument")
			}
			source, err := readForm(cmd, args)
			if err != nil {
				return err
			}
			ed, err := editor.Parse(source, nil)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}
			output := ed.Bytes()

			switch {
			case check:
				if !bytes.Equal(source, output) {
					return fmt.Errorf("%s is not formatted", args[0])
				}
				return nil
			case overwrite:
				return os.WriteFile(args[0], output, 0644)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&check, "check", false, "fail when the file is not formatted")

	return cmd
}

func readForm(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 {
		source, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return source, nil
	}
	if ext := filepath.Ext(args[0]); ext != ".java" {
		return nil, fmt.Errorf("expected .java file, got %s", ext)
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	return source, nil
}
