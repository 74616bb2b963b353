package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"treectx/pkg/logging"
	"treectx/pkg/version"
)

var (
	logger *zap.Logger

	flagConfig string
	flagRoot   string
	flagDebug  bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "treectx",
	Short: "treectx selects project files and compiles them into a context document",
	Long: `treectx lets you mark files and directories in a project tree and compile
the selection into a single document (a drawn file tree plus file contents),
ready to paste into a language model.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDebug {
			if err := logging.Setup(true, "treectx", version.Get().Version); err != nil {
				return err
			}
			logger = logging.Logger
		}
		return nil
	},
}

// Execute runs the root command with the given logger.
func Execute(l *zap.Logger) error {
	logger = l
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a configuration file (default: .treectx.yaml in the project root)")
	rootCmd.PersistentFlags().StringVarP(&flagRoot, "root", "C", ".", "Project root directory")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}
