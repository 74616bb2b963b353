package cmd

import (
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the selected files into the context document",
	Long: `Compile gathers every currently selected file, renders the file tree and
file contents, and writes the document to the configured output path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		copyFlag, err := cmd.Flags().GetBool("copy")
		if err != nil {
			return err
		}

		return a.compileContext(cmd, output, copyFlag)
	},
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "Override the configured output file path")
	compileCmd.Flags().Bool("copy", false, "Also copy the document to the system clipboard")
	rootCmd.AddCommand(compileCmd)
}
