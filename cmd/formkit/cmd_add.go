package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/formkit/editor"
)

func newAddCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "add <file> <class> <parent>",
		Short: "Add a new component to a form",
		Long: `Declare a new component of the given class and link it to parent the way
the parent's description asks for children.

Examples:
  formkit add Login.java Button fields
  formkit add -w Login.java toolkit.widgets.Label this`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			h, err := openForm(cmd, path)
			if err != nil {
				return err
			}
			parent, err := findComponent(h, args[2])
			if err != nil {
				return err
			}
			if h.Descriptions().ClassPath().Lookup(args[1]) == nil {
				return fmt.Errorf("unknown class %s", args[1])
			}
			j, err := h.Add(args[1], parent, editor.StatementTarget{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "added %s\n", j)
			return writeForm(cmd, h, path, overwrite)
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
