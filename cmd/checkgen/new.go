// New command: scaffold one check across the module artifacts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/checkgen/internal/history"
	"github.com/mesh-intelligence/checkgen/internal/scaffold"
	"github.com/mesh-intelligence/checkgen/pkg/types"
)

var newCmd = &cobra.Command{
	Use:   "new <module> <check>",
	Short: "Scaffold a new check",
	Long: `Scaffold a new check: add it to the module's build manifest, generate
its header and implementation, register it in the module source, and write a
test fixture. Module and check are dash-separated lowercase names.`,
	Example: "  checkgen new misc awesome-functions",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := types.CheckID{Module: args[0], Name: args[1]}
		if err := id.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "new:", err)
			os.Exit(exitUserError)
		}

		cfg, err := resolveConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "new:", err)
			os.Exit(exitSysError)
		}

		var hist *history.Log
		if cfg.History {
			hist, err = history.Open(cfg.DataDir)
			if err != nil {
				// History is advisory; scaffold anyway.
				logger.Warn("scaffold history unavailable", zap.Error(err))
				hist = nil
			} else {
				defer hist.Close()
			}
		}

		s, err := scaffold.New(cfg, logger, hist)
		if err != nil {
			fmt.Fprintln(os.Stderr, "new:", err)
			os.Exit(exitUserError)
		}
		res, err := s.Run(id)
		if err != nil {
			fmt.Fprintln(os.Stderr, "new:", err)
			os.Exit(exitSysError)
		}

		if res.AlreadyExists {
			fmt.Printf("check %s already exists, nothing to do\n", id.DashedName())
			return nil
		}
		fmt.Printf("scaffolded %s:\n", id.DashedName())
		for _, p := range res.Written {
			fmt.Println("  " + p)
		}
		return nil
	},
}
