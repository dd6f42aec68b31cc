package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "delete <file> <component>...",
		Short: "Delete components and the code that links them",
		Long: `Delete components from a form, together with their children, the code
that links them to their parents and the statements that use them.

Components that cannot be deleted are reported and skipped.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			h, err := openForm(cmd, path)
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			for _, name := range args[1:] {
				j, err := findComponent(h, name)
				if err != nil {
					fmt.Fprintf(stderr, "skip %s: %s\n", name, err)
					continue
				}
				if !j.CanDelete() {
					fmt.Fprintf(stderr, "skip %s: cannot be deleted\n", name)
					continue
				}
				if _, err := j.Delete(); err != nil {
					fmt.Fprintf(stderr, "skip %s: %s\n", name, err)
				}
			}
			return writeForm(cmd, h, path, overwrite)
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
