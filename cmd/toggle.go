package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"treectx/pkg/selection"
	"treectx/pkg/tree"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <path>...",
	Short: "Toggle selection of files or directory subtrees",
	Long: `Toggle flips the selection of each given path. A file flips its own
membership; a directory selects every file beneath it, or deselects them all
when they are already fully selected. A path that no longer exists on disk is
treated as a file so stale selections can be toggled off.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		for _, arg := range args {
			absPath, absErr := filepath.Abs(arg)
			if absErr != nil {
				return fmt.Errorf("resolve path %s: %w", arg, absErr)
			}

			entry := tree.PathEntry{
				Name:         filepath.Base(absPath),
				AbsolutePath: selection.Normalize(absPath),
				Kind:         tree.KindFile,
			}
			if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
				entry.Kind = tree.KindDirectory
			}

			if err := a.toggler.Toggle(entry); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d files selected.\n", a.set.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
