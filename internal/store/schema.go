package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    scenario TEXT NOT NULL,
    jurisdiction TEXT,
    perspective TEXT NOT NULL,
    seed INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS draws (
    run_id TEXT NOT NULL,
    draw INTEGER NOT NULL,
    strategy TEXT NOT NULL,
    effect REAL NOT NULL,
    cost REAL NOT NULL,
    PRIMARY KEY (run_id, strategy, draw),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS deltas (
    run_id TEXT NOT NULL,
    therapy TEXT NOT NULL,
    draw INTEGER NOT NULL,
    d_effect REAL NOT NULL,
    d_cost REAL NOT NULL,
    PRIMARY KEY (run_id, therapy, draw),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS summaries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    therapy TEXT NOT NULL,
    perspective TEXT NOT NULL,
    n INTEGER NOT NULL,
    ne REAL NOT NULL,
    nw REAL NOT NULL,
    se REAL NOT NULL,
    sw REAL NOT NULL,
    dominant INTEGER NOT NULL,
    dominated INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_draws_run ON draws(run_id);
CREATE INDEX IF NOT EXISTS idx_deltas_run_therapy ON deltas(run_id, therapy);
CREATE INDEX IF NOT EXISTS idx_summaries_run ON summaries(run_id);
`
