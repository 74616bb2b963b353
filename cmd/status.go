package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the currently selected files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		entries := a.materializer.CheckedFiles()
		for _, entry := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), a.relToRoot(entry.AbsolutePath))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d files selected.\n", len(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
