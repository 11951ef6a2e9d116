// History command: list recorded scaffold runs.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/checkgen/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scaffold runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "history:", err)
			os.Exit(exitSysError)
		}

		log, err := history.Open(dataDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "history:", err)
			os.Exit(exitSysError)
		}
		defer log.Close()

		entries, err := log.List()
		if err != nil {
			fmt.Fprintln(os.Stderr, "history:", err)
			os.Exit(exitSysError)
		}

		if len(entries) == 0 {
			fmt.Println("no scaffold history")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s-%s  %s  (%d files)\n",
				e.CreatedAt.Format(time.RFC3339), e.Module, e.Check, e.Symbol, len(e.Files))
		}
		return nil
	},
}
