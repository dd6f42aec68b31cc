package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	projectDir string
	verbosity  int
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "formkit",
		Short:         "Inspect and edit the component tree of Java forms",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", ".", "design project directory (toolkit/ and descriptions/)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newReparentCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
