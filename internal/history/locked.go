package history

import (
	"sync"

	"github.com/theirongolddev/payplan/internal/model"

	"github.com/shopspring/decimal"
)

// Locked guards a Log with a read/write mutex for multi-request servers.
// Every Add is a single critical section.
type Locked struct {
	mu  sync.RWMutex
	log *Log
}

// NewLocked wraps l. The caller must not use l directly afterwards.
func NewLocked(l *Log) *Locked {
	return &Locked{log: l}
}

// Add inserts a new record. See Log.Add.
func (s *Locked) Add(income decimal.Decimal, classYear model.ClassYear, over21 bool, tier model.RiskTier, months int) model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Add(income, classYear, over21, tier, months)
}

// Annotate sets optional amounts on a record. See Log.Annotate.
func (s *Locked) Annotate(year, month int, a model.Amounts) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Annotate(year, month, a)
}

// IsEmpty reports whether the log holds no records.
func (s *Locked) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.IsEmpty()
}

// Size counts the records in the log.
func (s *Locked) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Size()
}

// Search finds the first record in the given year and month.
func (s *Locked) Search(year, month int) (model.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Search(year, month)
}

// Snapshot returns a copy of every record in log order.
func (s *Locked) Snapshot() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Record, 0, len(s.log.records))
	for r := range s.log.All() {
		out = append(out, r)
	}
	return out
}
