// ABOUTME: Repair command for local database upkeep
// ABOUTME: Reports checkpoint, integrity, and vacuum results
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Check and compact the database",
	Long: `Run SQLite maintenance on the journal database:
- WAL checkpoint
- Integrity check
- VACUUM (only when the integrity check passes)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Repairing journal database...")

		result, err := sess.store.Repair(cmd.Context())
		if err != nil {
			return report(out, err)
		}

		// Display repair results with checkmarks
		if result.WalCheckpointed {
			_, _ = success.Fprintln(out, "  ✓ WAL checkpointed")
		}
		if result.IntegrityOK {
			_, _ = success.Fprintln(out, "  ✓ Integrity check passed")
		} else {
			_, _ = failure.Fprintln(out, "  ✗ Integrity check failed")
			for _, problem := range result.Problems {
				fmt.Fprintf(out, "    %s\n", problem)
			}
		}
		if result.Vacuumed {
			_, _ = success.Fprintln(out, "  ✓ Database vacuumed")
		}

		fmt.Fprintln(out)
		if result.IntegrityOK {
			_, _ = success.Fprintln(out, "Repair complete.")
		} else {
			_, _ = failure.Fprintln(out, "Repair failed. Restore the database from a backup.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(repairCmd)
}
