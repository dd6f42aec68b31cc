package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/formkit/editor"
)

func newReparentCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "reparent <file> <new-parent> <component>...",
		Short: "Move components under another parent",
		Long: `Move components under a new parent. Each component is linked to the new
parent the way the parent's description asks for children, and its code is
moved to the end of the block declaring the new parent.

Components that cannot be moved are reported and skipped; the moves that
succeeded are kept.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			h, err := openForm(cmd, path)
			if err != nil {
				return err
			}
			parent, err := findComponent(h, args[1])
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			for _, name := range args[2:] {
				j, err := findComponent(h, name)
				if err != nil {
					fmt.Fprintf(stderr, "skip %s: %s\n", name, err)
					continue
				}
				moved, err := h.Move(j, parent, editor.StatementTarget{})
				switch {
				case err != nil:
					fmt.Fprintf(stderr, "skip %s: %s\n", name, err)
				case !moved:
					fmt.Fprintf(stderr, "skip %s: move under %s refused\n", name, parent)
				}
			}
			return writeForm(cmd, h, path, overwrite)
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
