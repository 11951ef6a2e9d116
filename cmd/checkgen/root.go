// Root command for the checkgen CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/checkgen/internal/paths"
	"github.com/mesh-intelligence/checkgen/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir  string
	flagSourceRoot string
	flagDataDir    string
	flagVerbose    bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configSourceRoot string
	configDataDir    string
	configHistory    bool
)

// logger is replaced by a real logger in PersistentPreRunE.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "checkgen",
	Short: "Checkgen scaffolds new clang-tidy checks",
	Long: `Checkgen creates the skeleton files for a new clang-tidy check and
splices its entry into the module's build manifest and registration source,
keeping both sorted.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configSourceRoot = cfg.GetString(cfgKeySourceRoot)
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configHistory = cfg.GetBool(cfgKeyHistory)

		zapConfig := zap.NewProductionConfig()
		if flagVerbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagSourceRoot, "source-root", "", "clang-tidy source tree root (default: $(CWD))")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "history data directory (default: $(CWD)/.checkgen-db)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(historyCmd)
}

// resolveSourceRoot returns the source root following the precedence:
// --source-root flag > config.yaml source_root > CHECKGEN_SOURCE_ROOT env > CWD.
func resolveSourceRoot() (string, error) {
	return paths.ResolveSourceRoot(flagSourceRoot, configSourceRoot)
}

// resolveConfig assembles the effective Config from flags, config.yaml, and
// environment. DataDir is only resolved when history is enabled.
func resolveConfig() (types.Config, error) {
	sourceRoot, err := resolveSourceRoot()
	if err != nil {
		return types.Config{}, err
	}
	cfg := types.Config{SourceRoot: sourceRoot, History: configHistory}
	if cfg.History {
		cfg.DataDir, err = resolveDataDir()
		if err != nil {
			return types.Config{}, err
		}
	}
	return cfg, nil
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > CHECKGEN_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
