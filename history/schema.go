package history

// Schema creates the history tables. Times are stored as RFC3339 text.
const Schema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	created TEXT NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	periodic_amount REAL NOT NULL,
	periods INTEGER NOT NULL,
	lump_sum REAL NOT NULL,
	start_date TEXT NOT NULL,
	frequency TEXT NOT NULL,
	rate REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS cash_flows (
	entry_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	date TEXT NOT NULL,
	amount REAL NOT NULL,
	PRIMARY KEY (entry_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created);
`
