package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/formkit/editor"
)

func newMoveCmd() *cobra.Command {
	var (
		overwrite bool
		before    string
	)

	cmd := &cobra.Command{
		Use:   "move <file> <component> <parent>",
		Short: "Move a component, optionally before a sibling",
		Long: `Move a component under parent. With --before, its code is placed before
the statement declaring the named sibling; this also reorders a component
within its current parent.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			h, err := openForm(cmd, path)
			if err != nil {
				return err
			}
			j, err := findComponent(h, args[1])
			if err != nil {
				return err
			}
			parent, err := findComponent(h, args[2])
			if err != nil {
				return err
			}
			var target editor.StatementTarget
			if before != "" {
				sibling, err := findComponent(h, before)
				if err != nil {
					return err
				}
				stmt := sibling.Variable().Statement()
				if !stmt.IsValid() {
					return fmt.Errorf("%s is not declared by a statement", sibling)
				}
				target = editor.Before(stmt)
			}
			moved, err := h.Move(j, parent, target)
			if err != nil {
				return err
			}
			if !moved {
				return fmt.Errorf("move of %s under %s refused", j, parent)
			}
			return writeForm(cmd, h, path, overwrite)
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().StringVar(&before, "before", "", "place the component before this sibling")

	return cmd
}
