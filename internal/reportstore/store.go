// Package reportstore provides SQLite-backed persistence for commission
// reports, so past runs can be listed and compared.
package reportstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lumenstage/verifier/internal/domain"
)

// Store persists commission reports
type Store struct {
	db *sql.DB
}

// New opens (and migrates) the database at the given path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport persists a finalized commission report and its phase results
func (s *Store) SaveReport(report *domain.CommissionReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO commissions (id, status, overall_result, started_at, finished_at, duration_seconds,
			agents_passed, agents_failed, critical_findings, high_findings, medium_findings, low_findings, info_findings, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			overall_result = excluded.overall_result,
			finished_at = excluded.finished_at,
			duration_seconds = excluded.duration_seconds,
			agents_passed = excluded.agents_passed,
			agents_failed = excluded.agents_failed,
			critical_findings = excluded.critical_findings,
			high_findings = excluded.high_findings,
			medium_findings = excluded.medium_findings,
			low_findings = excluded.low_findings,
			info_findings = excluded.info_findings,
			report_json = excluded.report_json
	`,
		report.ID,
		string(report.Status),
		report.OverallResult,
		report.StartTime,
		report.EndTime,
		report.DurationSeconds,
		report.AgentsPassed,
		report.AgentsFailed,
		report.CriticalFindings,
		report.HighFindings,
		report.MediumFindings,
		report.LowFindings,
		report.InfoFindings,
		string(reportJSON),
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM phase_results WHERE commission_id = ?`, report.ID); err != nil {
		return err
	}
	for _, p := range report.Phases {
		_, err := tx.Exec(`
			INSERT INTO phase_results (commission_id, name, status, duration_seconds,
				total_agents, agents_passed, agents_failed, critical_findings, high_findings, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			report.ID,
			p.Name,
			string(p.Status),
			p.DurationSeconds,
			p.Summary.TotalAgents,
			p.Summary.AgentsPassed,
			p.Summary.AgentsFailed,
			p.Summary.CriticalFindings,
			p.Summary.HighFindings,
			p.Error,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetReport retrieves a full commission report by id
func (s *Store) GetReport(id string) (*domain.CommissionReport, error) {
	var reportJSON string
	err := s.db.QueryRow(`SELECT report_json FROM commissions WHERE id = ?`, id).Scan(&reportJSON)
	if err != nil {
		return nil, err
	}

	var report domain.CommissionReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// RunSummary is one row of the commission history listing
type RunSummary struct {
	ID               string
	Status           domain.CommissionStatus
	OverallResult    string
	StartedAt        time.Time
	DurationSeconds  float64
	AgentsPassed     int
	AgentsFailed     int
	CriticalFindings int
	HighFindings     int
}

// ListRecent returns the most recent commission runs, newest first
func (s *Store) ListRecent(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, status, overall_result, started_at, duration_seconds,
			agents_passed, agents_failed, critical_findings, high_findings
		FROM commissions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var status string
		if err := rows.Scan(&r.ID, &status, &r.OverallResult, &r.StartedAt, &r.DurationSeconds,
			&r.AgentsPassed, &r.AgentsFailed, &r.CriticalFindings, &r.HighFindings); err != nil {
			return nil, err
		}
		r.Status = domain.CommissionStatus(status)
		out = append(out, r)
	}
	return out, rows.Err()
}
