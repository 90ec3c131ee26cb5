// Package history keeps submitted records in a date-ordered, append-only log.
package history

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/theirongolddev/payplan/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Log holds records ordered by descending submission date (most recent first).
// Records sharing a date keep their arrival order.
// A Log is not safe for concurrent use; wrap it in Locked for that.
type Log struct {
	records []model.Record
	now     func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the wall clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// New returns an empty log.
func New(opts ...Option) *Log {
	l := &Log{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add stamps a new record with today's date and inserts it in order.
// It returns a copy of the stored record.
func (l *Log) Add(income decimal.Decimal, classYear model.ClassYear, over21 bool, tier model.RiskTier, months int) model.Record {
	now := l.now()
	rec := model.Record{
		ID:               uuid.New(),
		SubmittedOn:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Income:           income,
		ClassYear:        classYear,
		Over21:           over21,
		RiskTier:         tier,
		SimulationMonths: months,
	}

	// Skip past every record dated on or after the new one.
	pos := 0
	for pos < len(l.records) && !l.records[pos].SubmittedOn.Before(rec.SubmittedOn) {
		pos++
	}

	l.records = append(l.records, model.Record{})
	copy(l.records[pos+1:], l.records[pos:])
	l.records[pos] = rec

	return rec.Clone()
}

// IsEmpty reports whether the log holds no records.
func (l *Log) IsEmpty() bool {
	return len(l.records) == 0
}

// Size counts the records in the log.
func (l *Log) Size() int {
	n := 0
	for range l.records {
		n++
	}
	return n
}

// Search returns the first record (in log order) submitted in the given
// year and month. Months outside 1-12 never match.
func (l *Log) Search(year, month int) (model.Record, bool) {
	idx := l.find(year, month)
	if idx < 0 {
		return model.Record{}, false
	}
	return l.records[idx].Clone(), true
}

// Annotate sets the optional saving/spending/invest figures on the first
// record submitted in the given year and month. Nil fields in a are left
// untouched. It reports whether a record matched.
func (l *Log) Annotate(year, month int, a model.Amounts) bool {
	idx := l.find(year, month)
	if idx < 0 {
		return false
	}
	rec := &l.records[idx]
	if a.Saving != nil {
		rec.SetSaving(*a.Saving)
	}
	if a.Spending != nil {
		rec.SetSpending(*a.Spending)
	}
	if a.Invest != nil {
		rec.SetInvest(*a.Invest)
	}
	return true
}

func (l *Log) find(year, month int) int {
	if month < 1 || month > 12 {
		return -1
	}
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	for i, r := range l.records {
		if strings.HasPrefix(r.Date(), prefix) {
			return i
		}
	}
	return -1
}

// All yields copies of the records in log order. The sequence is lazy and
// can be ranged over any number of times.
func (l *Log) All() iter.Seq[model.Record] {
	return func(yield func(model.Record) bool) {
		for _, r := range l.records {
			if !yield(r.Clone()) {
				return
			}
		}
	}
}

// Display yields one formatted text block per record, in log order.
func (l *Log) Display() iter.Seq[string] {
	return func(yield func(string) bool) {
		for r := range l.All() {
			if !yield(FormatRecord(r)) {
				return
			}
		}
	}
}

// FormatRecord renders a record as the multi-line block used by the
// review screens.
func FormatRecord(r model.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", r.Date())
	fmt.Fprintf(&b, "  Income: %s\n", r.Income.StringFixed(2))
	fmt.Fprintf(&b, "  Class Year: %s\n", r.ClassYear)
	fmt.Fprintf(&b, "  Over 21: %s\n", yesNo(r.Over21))
	fmt.Fprintf(&b, "  Risk Level: %s\n", r.RiskTier)
	fmt.Fprintf(&b, "  Simulation Length: %d months\n", r.SimulationMonths)
	if r.Saving != nil {
		fmt.Fprintf(&b, "  Saving: %s\n", r.Saving.StringFixed(2))
	}
	if r.Spending != nil {
		fmt.Fprintf(&b, "  Spending: %s\n", r.Spending.StringFixed(2))
	}
	if r.Invest != nil {
		fmt.Fprintf(&b, "  Invest: %s\n", r.Invest.StringFixed(2))
	}
	b.WriteString(strings.Repeat("-", 30))
	b.WriteString("\n")
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
