package main

import (
	"github.com/spf13/cobra"
)

func newTreeCmd() *cobra.Command {
	var treeFormat string

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the component tree of a form",
		Long: `Print the components of the class declared in a .java file.

Each line shows the component name, its class, the association that links it
to its parent and the line that declares it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openForm(cmd, args[0])
			if err != nil {
				return err
			}
			enc, err := encoderFor(treeFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			root := h.Root()
			return enc.Encode(componentTree(root, root.Class()))
		},
	}

	cmd.Flags().StringVarP(&treeFormat, "format", "f", "line", "output format (json, line)")

	return cmd
}
