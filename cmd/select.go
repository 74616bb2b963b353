package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"treectx/pkg/tui"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Browse the project tree and toggle selections interactively",
	Long: `Select opens a terminal browser over the project tree. Space toggles the
entry under the cursor, directories show tri-state checkboxes, and 'c'
compiles the context document on the way out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("the select command requires an interactive terminal")
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		compileRequested, err := tui.Run(a.materializer, a.toggler, logger)
		if err != nil {
			return err
		}
		if compileRequested {
			return a.compileContext(cmd, "", false)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
