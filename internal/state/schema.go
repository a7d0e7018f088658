package state

// migrations[i] upgrades the schema from version i to i+1. Append only.
var migrations = []string{
	`
	CREATE TABLE session_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		page INTEGER NOT NULL,
		mode TEXT NOT NULL DEFAULT 'hifdh',
		repetitions INTEGER NOT NULL DEFAULT 5,
		reciter INTEGER NOT NULL DEFAULT 7,
		verse INTEGER NOT NULL DEFAULT 0,
		phase INTEGER NOT NULL DEFAULT 0,
		repetition INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE completions (
		id TEXT PRIMARY KEY,
		page INTEGER NOT NULL,
		mode TEXT NOT NULL,
		repetitions INTEGER NOT NULL,
		reciter INTEGER NOT NULL,
		missing_audio INTEGER NOT NULL DEFAULT 0,
		failures INTEGER NOT NULL DEFAULT 0,
		completed_at INTEGER NOT NULL
	);

	CREATE INDEX idx_completions_page ON completions(page);
	CREATE INDEX idx_completions_completed_at ON completions(completed_at DESC);

	CREATE TABLE page_progress (
		page INTEGER PRIMARY KEY,
		completions INTEGER NOT NULL DEFAULT 0,
		first_completed_at INTEGER NOT NULL,
		last_completed_at INTEGER NOT NULL
	);
	`,
	`
	ALTER TABLE session_state ADD COLUMN volume REAL NOT NULL DEFAULT 1.0;
	ALTER TABLE session_state ADD COLUMN muted INTEGER NOT NULL DEFAULT 0;
	`,
	`
	CREATE TABLE memorized_pages (
		page INTEGER PRIMARY KEY,
		memorized_at INTEGER NOT NULL
	);
	`,
}
