package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mwork_admission/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "admissionctl",
		Short: "Admin tool for casting admission",
		Long: `admissionctl works directly against the admission database:
schema migration, role ledger inspection and closing expired castings.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.LedgerCmd())
	rootCmd.AddCommand(cli.CloseExpiredCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
