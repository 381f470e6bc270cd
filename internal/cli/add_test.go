// ABOUTME: Unit tests for the add command
// ABOUTME: Tests subject creation, date flags, and argument validation
package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand(t *testing.T) {
	t.Run("creates subject on first use", func(t *testing.T) {
		dbPath := setupCLI(t)

		output, err := run(t, "", "--db", dbPath, "add", "Work", "shipped the release")
		require.NoError(t, err)
		assert.Contains(t, output, "Subject 'Work' added successfully")
		assert.Contains(t, output, "Entry added successfully (ID: 1)")
		assert.Contains(t, output, "Work: shipped the release")

		output, err = run(t, "", "--db", dbPath, "a", "work", "second")
		require.NoError(t, err)
		assert.NotContains(t, output, "Subject 'Work' added")
		assert.Contains(t, output, "(ID: 2)")
	})

	t.Run("accepts a custom date", func(t *testing.T) {
		dbPath := setupCLI(t)

		output, err := run(t, "", "--db", dbPath, "add", "Health", "Checkup", "--date", "2025-01-15 14:00")
		require.NoError(t, err)
		assert.Contains(t, output, "2025-01-15 14:00:00")
	})

	t.Run("reports an invalid date without failing", func(t *testing.T) {
		dbPath := setupCLI(t)

		output, err := run(t, "", "--db", dbPath, "add", "Health", "Checkup", "-d", "not a date")
		require.NoError(t, err)
		assert.Contains(t, output, "Invalid date format")
	})

	t.Run("resolves by id", func(t *testing.T) {
		dbPath := setupCLI(t)

		_, err := run(t, "", "--db", dbPath, "add", "Work", "first")
		require.NoError(t, err)

		output, err := run(t, "", "--db", dbPath, "add", "--id", "1", "second")
		require.NoError(t, err)
		assert.Contains(t, output, "Work: second")

		output, err = run(t, "", "--db", dbPath, "add", "--id", "42", "third")
		require.NoError(t, err)
		assert.Contains(t, output, "Subject with ID 42 not found")

		_, err = run(t, "", "--db", dbPath, "add", "--id", "abc", "third")
		assert.Error(t, err)
	})

	t.Run("rejects wrong argument count", func(t *testing.T) {
		dbPath := setupCLI(t)

		_, err := run(t, "", "--db", dbPath, "add", "only-subject")
		require.Error(t, err)
		if !strings.Contains(err.Error(), "2 arg(s)") {
			t.Errorf("expected error message about exact args, got: %v", err)
		}

		_, err = run(t, "", "--db", dbPath, "add", "a", "b", "c")
		assert.Error(t, err)
	})
}
