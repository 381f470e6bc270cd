// ABOUTME: Subject commands for adding, listing, and deleting subjects
// ABOUTME: Deletion asks for typed confirmation because it cascades
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/journal/internal/db"
)

var (
	subjectJSONOutput bool
	subjectDeleteYes  bool
)

var subjectCmd = &cobra.Command{
	Use:     "subject",
	Aliases: []string{"subjects"},
	Short:   "Manage subjects",
}

var subjectAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		res, err := sess.store.CreateSubject(cmd.Context(), args[0])
		if err != nil {
			return report(out, err)
		}
		_, _ = success.Fprintf(out, "%s (ID: %d)\n", res.Message, res.Subject.ID)
		return nil
	},
}

var subjectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects with entry counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		subjects, err := sess.store.ListSubjects(cmd.Context())
		if err != nil {
			return report(out, err)
		}

		if subjectJSONOutput {
			data, err := json.MarshalIndent(subjects, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(subjects) == 0 {
			_, _ = warning.Fprintln(out, "No subjects found. Add one with 'journal subject add NAME'.")
			return nil
		}

		fmt.Fprintln(out, "ID\tEntries\tCreated\t\t\tName")
		fmt.Fprintln(out, "--\t-------\t-------\t\t\t----")
		for _, s := range subjects {
			fmt.Fprintf(out, "%d\t%d\t%s\t%s\n", s.ID, s.EntryCount, s.CreatedAt, s.Name)
		}
		return nil
	},
}

var subjectDeleteCmd = &cobra.Command{
	Use:   "delete ID|NAME",
	Short: "Delete a subject and all its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		found, err := sess.store.ResolveSubject(ctx, db.ByName(args[0]), false)
		if err != nil {
			return report(out, err)
		}
		sub := found.Subject

		if !subjectDeleteYes {
			fmt.Fprintf(out, "This will delete subject '%s' and its %d entries.\n", sub.Name, sub.EntryCount)
			fmt.Fprintln(out, "THIS CANNOT BE UNDONE!")
			fmt.Fprintf(out, "Type '%s' to confirm: ", sub.Name)

			reader := bufio.NewReader(cmd.InOrStdin())
			confirmation, _ := reader.ReadString('\n')
			confirmation = strings.TrimSpace(confirmation)

			if confirmation != sub.Name {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		res, err := sess.store.DeleteSubject(ctx, sub.ID)
		if err != nil {
			return report(out, err)
		}
		_, _ = success.Fprintln(out, res.Message)
		fmt.Fprintf(out, "Entries removed: %d\n", res.EntriesRemoved)
		return nil
	},
}

func init() {
	subjectListCmd.Flags().BoolVar(&subjectJSONOutput, "json", false, "Output as JSON")
	subjectDeleteCmd.Flags().BoolVarP(&subjectDeleteYes, "yes", "y", false, "Skip confirmation")

	subjectCmd.AddCommand(subjectAddCmd)
	subjectCmd.AddCommand(subjectListCmd)
	subjectCmd.AddCommand(subjectDeleteCmd)
	rootCmd.AddCommand(subjectCmd)
}
