// ABOUTME: List command for displaying a subject's entries
// ABOUTME: Supports date order, limits, partial matching, and JSON output
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/journal/internal/db"
)

var (
	listOrder      string
	listLimit      int
	listJSONOutput bool
	listMatch      bool
)

var listCmd = &cobra.Command{
	Use:     "list SUBJECT",
	Aliases: []string{"ls"},
	Short:   "List entries for a subject",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := db.ParseOrder(listOrder)
		if err != nil {
			return err
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		name := args[0]
		if listMatch {
			m, err := sess.store.MatchSubject(ctx, name)
			if err != nil {
				return report(out, err)
			}
			name = m.Subject.Name
		}

		list, err := sess.store.GetEntries(ctx, name, order, listLimit)
		if err != nil {
			return report(out, err)
		}

		if listJSONOutput {
			data, err := json.MarshalIndent(list, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if list.Count == 0 {
			_, _ = warning.Fprintln(out, list.Message)
			return nil
		}

		_, _ = success.Fprintln(out, list.Message)
		fmt.Fprintln(out, "ID\tDate\t\t\tDetail")
		fmt.Fprintln(out, "--\t----\t\t\t------")
		for _, entry := range list.Entries {
			fmt.Fprintf(out, "%d\t%s\t%s\n", entry.ID, entry.Date, entry.Detail)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOrder, "order", "o", "asc", "Sort order: asc (oldest first) or desc (newest first)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Number of entries to show (0 for all)")
	listCmd.Flags().BoolVar(&listJSONOutput, "json", false, "Output as JSON")
	listCmd.Flags().BoolVarP(&listMatch, "match", "m", false, "Allow a unique partial subject name")
	rootCmd.AddCommand(listCmd)
}
