package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mwork_admission/internal/repositories"
	"mwork_admission/internal/workers"
)

// CloseExpiredCmd - команда close-expired, один проход воркера кастингов
func CloseExpiredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close-expired",
		Short: "Close recruiting for castings whose date has passed",
		Long: `Run one pass of the casting worker: every active casting with a past
casting date becomes closed. Accepted participants are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			worker := workers.NewCastingWorker(db, repositories.NewCastingRepository(), 0)
			closed := worker.RunOnce(context.Background())
			fmt.Fprintf(cmd.OutOrStdout(), "Closed castings: %d\n", closed)
			return nil
		},
	}
}
