package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/history"
	"github.com/theirongolddev/payplan/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func submit(t *testing.T, l *history.Log, income int64, tier model.RiskTier) (model.Record, allocation.Breakdown) {
	t.Helper()
	b, err := allocation.Compute(decimal.NewFromInt(income), tier, 1)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return l.Add(decimal.NewFromInt(income), model.FirstClass, true, tier, 1), b
}

func TestJournal_AppendAndList(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)

	day := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	l := history.New(history.WithClock(func() time.Time { return day }))

	rec, b := submit(t, l, 1000, model.Balancer)
	if err := j.Append(ctx, rec, b); err != nil {
		t.Fatalf("Append: %v", err)
	}

	day = day.AddDate(0, 1, 0)
	zeroRec, zeroB := submit(t, l, 0, model.Saver)
	if err := j.Append(ctx, zeroRec, zeroB); err != nil {
		t.Fatalf("Append zero: %v", err)
	}

	n, err := j.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}

	entries, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	latest := entries[0]
	if latest.RecordID != zeroRec.ID {
		t.Errorf("first entry = %s, want most recent submission %s", latest.RecordID, zeroRec.ID)
	}
	if latest.ROI.Valid {
		t.Error("zero-income entry has a ROI, want NULL")
	}

	first := entries[1]
	if first.SubmittedOn.Format(model.DateLayout) != "2025-04-01" {
		t.Errorf("SubmittedOn = %s, want 2025-04-01", first.SubmittedOn.Format(model.DateLayout))
	}
	if !first.Income.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Income = %s, want 1000", first.Income)
	}
	if first.InvestmentValue.StringFixed(2) != "804.67" {
		t.Errorf("InvestmentValue = %s, want 804.67", first.InvestmentValue.StringFixed(2))
	}
	if !first.ROI.Valid || first.ROI.Decimal.StringFixed(2) != "0.58" {
		t.Errorf("ROI = %v, want 0.58", first.ROI)
	}
	if !first.Over21 || first.ClassYear != model.FirstClass || first.RiskTier != model.Balancer {
		t.Errorf("categorical fields = %+v", first)
	}

	limited, err := j.List(ctx, 1)
	if err != nil {
		t.Fatalf("List(1): %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("List(1) returned %d entries", len(limited))
	}
}

func TestJournal_ReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rec, b := submit(t, history.New(), 500, model.Gambler)
	if err := j.Append(ctx, rec, b); err != nil {
		t.Fatalf("Append: %v", err)
	}
	_ = j.Close()

	j2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = j2.Close() }()

	n, err := j2.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("Count after reopen = %d, want 1", n)
	}
}

func TestJournal_SameSecondKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)
	stamp := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return stamp }

	l := history.New(history.WithClock(func() time.Time { return stamp }))
	var want []uuid.UUID
	for i := range 8 {
		rec, b := submit(t, l, int64(100*(i+1)), model.Saver)
		if err := j.Append(ctx, rec, b); err != nil {
			t.Fatalf("Append: %v", err)
		}
		want = append(want, rec.ID)
	}

	entries, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.RecordID != want[i] {
			t.Errorf("entries[%d] = %s, want %s", i, e.RecordID, want[i])
		}
	}
}

func TestJournal_CorruptDateIsAnError(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)

	rec, b := submit(t, history.New(), 500, model.Gambler)
	if err := j.Append(ctx, rec, b); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := j.db.ExecContext(ctx, "UPDATE submissions SET submitted_on = 'April 1st'"); err != nil {
		t.Fatalf("corrupting row: %v", err)
	}

	if _, err := j.List(ctx, 0); err == nil || !strings.Contains(err.Error(), "submitted_on") {
		t.Fatalf("List err = %v, want submitted_on parse error", err)
	}
}
