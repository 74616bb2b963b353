package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"treectx/pkg/tree"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List one directory level with selection markers",
	Long: `List prints the immediate children of a directory, directories first, with
a tri-state marker per entry: [x] selected, [~] partially selected, [ ] not
selected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		dir := filepath.FromSlash(a.root)
		if len(args) == 1 {
			dir, err = filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve directory %s: %w", args[0], err)
			}
		}

		entries, err := a.materializer.ListChildren(dir)
		if err != nil {
			if errors.Is(err, tree.ErrDirectoryUnreadable) {
				logger.Warn("Directory unreadable", zap.String("directory", dir), zap.Error(err))
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: cannot read %s\n", dir)
				return nil
			}
			return err
		}

		for _, entry := range entries {
			name := entry.Name
			if entry.IsDir() {
				name += "/"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", entry.State.Marker(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
