package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mwork_admission/internal/admission"
	"mwork_admission/internal/repositories"
)

// LedgerCmd - команда ledger: занятость ролей кастинга
func LedgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger <casting-id>",
		Short: "Show per-role capacity usage of a casting",
		Long: `Print capacity, active, pending and rejected counts for every role
declared by the casting. Counts are read without taking the casting lock.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			ledger := admission.NewLedger(db, repositories.NewCastingRepository(), repositories.NewAssignmentRepository())
			usage, err := ledger.Snapshot(context.Background(), args[0])
			if err != nil {
				return err
			}
			return PrintLedger(cmd.OutOrStdout(), args[0], usage)
		},
	}
}

// PrintLedger печатает таблицу занятости ролей
func PrintLedger(out io.Writer, castingID string, usage []admission.RoleUsage) error {
	fmt.Fprintf(out, "Casting %s\n\n", castingID)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tCAPACITY\tACTIVE\tPENDING\tREJECTED\tFREE")
	for _, u := range usage {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
			u.Role, u.Capacity, u.Active, u.Pending, u.Rejected, freeLabel(u))
	}
	return tw.Flush()
}

func freeLabel(u admission.RoleUsage) string {
	label := fmt.Sprintf("%d", u.Free)
	switch {
	case u.Free == 0:
		return color.New(color.FgRed).Sprint(label)
	case u.Free*4 <= u.Capacity:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.FgGreen).Sprint(label)
	}
}
