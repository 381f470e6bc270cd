// ABOUTME: Stats command for journal-wide totals
// ABOUTME: Prints subject and entry counts and the database size
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsJSONOutput bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		st, err := sess.store.Stats(cmd.Context())
		if err != nil {
			return report(out, err)
		}

		if statsJSONOutput {
			data, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Database:  %s\n", sess.store.Path())
		fmt.Fprintf(out, "Subjects:  %s\n", humanize.Comma(int64(st.Subjects)))
		fmt.Fprintf(out, "Entries:   %s\n", humanize.Comma(int64(st.Entries)))
		fmt.Fprintf(out, "Size:      %s\n", humanize.Bytes(uint64(st.SizeBytes))) //nolint:gosec // File sizes are never negative
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(statsCmd)
}
