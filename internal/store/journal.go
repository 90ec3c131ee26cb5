// Package store provides the optional SQLite journal of submissions.
// The journal is write-behind only: the history log is never loaded from it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Journal appends submissions to a SQLite database.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is one journaled submission.
type Entry struct {
	RecordID         uuid.UUID
	SubmittedOn      time.Time
	Income           decimal.Decimal
	ClassYear        model.ClassYear
	Over21           bool
	RiskTier         model.RiskTier
	SimulationMonths int
	Spend            decimal.Decimal
	Save             decimal.Decimal
	Invest           decimal.Decimal
	TotalInvested    decimal.Decimal
	InvestmentValue  decimal.Decimal
	ROI              decimal.NullDecimal
	RecordedAt       time.Time
}

// Open opens or creates the journal at dbPath and applies migrations.
func Open(dbPath string) (*Journal, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating journal dir: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append stores a submission and its breakdown.
func (j *Journal) Append(ctx context.Context, rec model.Record, b allocation.Breakdown) error {
	over21 := 0
	if rec.Over21 {
		over21 = 1
	}
	var roi sql.NullString
	if b.ROI.Valid {
		roi = sql.NullString{String: b.ROI.Decimal.String(), Valid: true}
	}

	_, err := j.db.ExecContext(ctx, `INSERT INTO submissions
		(record_id, submitted_on, income, class_year, over_21, risk_tier, simulation_months,
		 spend_amount, save_amount, invest_amount, total_invested, investment_value, roi_percent, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Date(), rec.Income.String(), string(rec.ClassYear), over21,
		string(rec.RiskTier), rec.SimulationMonths,
		b.Spend.String(), b.Save.String(), b.Invest.String(),
		b.TotalInvested.String(), b.InvestmentValue.String(), roi,
		j.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("journal append %s: %w", rec.ID, err)
	}
	return nil
}

// List returns up to limit entries, most recent submission first. Entries
// sharing a date come back in insertion order. A limit of zero or less
// returns everything.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT
		record_id, submitted_on, income, class_year, over_21, risk_tier, simulation_months,
		spend_amount, save_amount, invest_amount, total_invested, investment_value, roi_percent, recorded_at
		FROM submissions
		ORDER BY submitted_on DESC, recorded_at ASC, rowid ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e                                     Entry
			id, submittedOn, recordedAt           string
			income, spend, save, invest           string
			totalInvested, value, classYear, tier string
			over21                                int
			roi                                   sql.NullString
		)
		if err := rows.Scan(&id, &submittedOn, &income, &classYear, &over21, &tier, &e.SimulationMonths,
			&spend, &save, &invest, &totalInvested, &value, &roi, &recordedAt); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}

		if e.RecordID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("journal record id %q: %w", id, err)
		}
		if e.SubmittedOn, err = time.Parse(model.DateLayout, submittedOn); err != nil {
			return nil, fmt.Errorf("journal submitted_on %q: %w", submittedOn, err)
		}
		if e.RecordedAt, err = time.Parse(time.RFC3339, recordedAt); err != nil {
			return nil, fmt.Errorf("journal recorded_at %q: %w", recordedAt, err)
		}
		e.ClassYear = model.ClassYear(classYear)
		e.Over21 = over21 != 0
		e.RiskTier = model.RiskTier(tier)

		decimals := []struct {
			src string
			dst *decimal.Decimal
		}{
			{income, &e.Income},
			{spend, &e.Spend},
			{save, &e.Save},
			{invest, &e.Invest},
			{totalInvested, &e.TotalInvested},
			{value, &e.InvestmentValue},
		}
		for _, d := range decimals {
			if *d.dst, err = decimal.NewFromString(d.src); err != nil {
				return nil, fmt.Errorf("journal decimal %q: %w", d.src, err)
			}
		}
		if roi.Valid {
			v, err := decimal.NewFromString(roi.String)
			if err != nil {
				return nil, fmt.Errorf("journal roi %q: %w", roi.String, err)
			}
			e.ROI = decimal.NewNullDecimal(v)
		}

		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of journaled submissions.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var count int
	err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&count)
	return count, err
}
