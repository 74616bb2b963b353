package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Deselect every file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		cleared := a.set.Len()
		a.set.Clear()
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d selected files.\n", cleared)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
