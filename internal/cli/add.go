// ABOUTME: Add command for recording journal entries
// ABOUTME: Creates the subject on first use and accepts a custom date
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harper/journal/internal/db"
)

var (
	addDate string
	addByID bool
)

var addCmd = &cobra.Command{
	Use:     "add SUBJECT DETAIL",
	Aliases: []string{"a"},
	Short:   "Add an entry to a subject",
	Long: `Add an entry to a subject, creating the subject if it does not exist yet.

Dates default to now. A custom date is accepted in most common layouts and
stored as YYYY-MM-DD HH:MM:SS. A bare number is not a date.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := db.ByName(args[0])
		if addByID {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subject ID %q", args[0])
			}
			ref = db.ByID(id)
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		res, err := sess.store.AddEntry(cmd.Context(), ref, args[1], addDate)
		if err != nil {
			return report(out, err)
		}

		if res.SubjectCreated {
			_, _ = success.Fprintf(out, "Subject '%s' added successfully\n", res.Entry.Subject)
		}
		_, _ = success.Fprintf(out, "%s (ID: %d)\n", res.Message, res.Entry.ID)
		fmt.Fprintf(out, "%s  %s: %s\n", res.Entry.Date, res.Entry.Subject, res.Entry.Detail)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Entry date (default now)")
	addCmd.Flags().BoolVar(&addByID, "id", false, "Treat SUBJECT as a subject ID")
	rootCmd.AddCommand(addCmd)
}
