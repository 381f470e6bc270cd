// ABOUTME: Delete command for removing a single entry
// ABOUTME: Entries are addressed by their numeric ID
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ENTRY_ID",
	Aliases: []string{"rm"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry ID %q", args[0])
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		res, err := sess.store.DeleteEntry(cmd.Context(), id)
		if err != nil {
			return report(out, err)
		}
		_, _ = success.Fprintln(out, res.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
