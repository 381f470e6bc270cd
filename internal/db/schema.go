// ABOUTME: Database schema definitions
// ABOUTME: SQL for the Subject and Entry tables, indexes, and triggers
package db

const schema = `
CREATE TABLE IF NOT EXISTS Subject (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE CHECK (length(trim(name)) > 0),
    created_at TEXT NOT NULL DEFAULT (datetime('now', 'localtime')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now', 'localtime'))
);

CREATE TABLE IF NOT EXISTS Entry (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    subject_id INTEGER NOT NULL,
    date TEXT NOT NULL DEFAULT (datetime('now', 'localtime')),
    detail TEXT NOT NULL CHECK (length(trim(detail)) > 0),
    created_at TEXT NOT NULL DEFAULT (datetime('now', 'localtime')),
    FOREIGN KEY (subject_id) REFERENCES Subject(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_subject_name ON Subject(name);
CREATE INDEX IF NOT EXISTS idx_entry_subject_id ON Entry(subject_id);
CREATE INDEX IF NOT EXISTS idx_entry_date ON Entry(date);
CREATE INDEX IF NOT EXISTS idx_entry_subject_date ON Entry(subject_id, date);

CREATE TRIGGER IF NOT EXISTS subject_touch AFTER UPDATE OF name ON Subject BEGIN
  UPDATE Subject SET updated_at = datetime('now', 'localtime') WHERE id = new.id;
END;
`
