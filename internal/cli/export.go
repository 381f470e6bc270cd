// ABOUTME: Export command for writing a subject's entries to a file
// ABOUTME: Formats and destination default to the configured values
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/journal/internal/db"
	"github.com/harper/journal/internal/export"
)

var (
	exportFormat string
	exportDir    string
	exportMatch  bool
)

var exportCmd = &cobra.Command{
	Use:   "export SUBJECT",
	Short: "Export a subject's entries to a file",
	Long: `Export every entry of a subject, oldest first, to
journal_export_<subject>_<YYYYMMDD_HHMMSS>.<ext> in the export directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		formatName := exportFormat
		if formatName == "" {
			formatName = sess.cfg.ExportFormat
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		dir := exportDir
		if dir == "" {
			dir = sess.cfg.ExportDir
		}

		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		name := args[0]
		if exportMatch {
			m, err := sess.store.MatchSubject(ctx, name)
			if err != nil {
				return report(out, err)
			}
			name = m.Subject.Name
		}

		list, err := sess.store.GetEntries(ctx, name, db.Ascending, 0)
		if err != nil {
			return report(out, err)
		}
		if list.Count == 0 {
			_, _ = warning.Fprintln(out, list.Message)
			return nil
		}

		path, err := export.Write(dir, format, list, time.Now())
		if err != nil {
			return fmt.Errorf("error exporting entries: %w", err)
		}
		sess.log.Info("entries exported", "subject", list.Subject, "count", list.Count, "path", path)
		_, _ = success.Fprintf(out, "Entries exported successfully to: %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format: markdown, json, or yaml (default from config)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Directory to write into (default from config)")
	exportCmd.Flags().BoolVarP(&exportMatch, "match", "m", false, "Allow a unique partial subject name")
	rootCmd.AddCommand(exportCmd)
}
