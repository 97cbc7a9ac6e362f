package reportstore

const schema = `
CREATE TABLE IF NOT EXISTS commissions (
    id TEXT PRIMARY KEY,
    status TEXT NOT NULL,
    overall_result TEXT,
    started_at TIMESTAMP,
    finished_at TIMESTAMP,
    duration_seconds REAL,
    agents_passed INTEGER DEFAULT 0,
    agents_failed INTEGER DEFAULT 0,
    critical_findings INTEGER DEFAULT 0,
    high_findings INTEGER DEFAULT 0,
    medium_findings INTEGER DEFAULT 0,
    low_findings INTEGER DEFAULT 0,
    info_findings INTEGER DEFAULT 0,
    report_json TEXT
);

CREATE INDEX IF NOT EXISTS idx_commissions_started ON commissions(started_at);

CREATE TABLE IF NOT EXISTS phase_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    commission_id TEXT NOT NULL REFERENCES commissions(id),
    name TEXT NOT NULL,
    status TEXT NOT NULL,
    duration_seconds REAL,
    total_agents INTEGER DEFAULT 0,
    agents_passed INTEGER DEFAULT 0,
    agents_failed INTEGER DEFAULT 0,
    critical_findings INTEGER DEFAULT 0,
    high_findings INTEGER DEFAULT 0,
    error TEXT
);

CREATE INDEX IF NOT EXISTS idx_phase_results_commission ON phase_results(commission_id);
`
