package history

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/payplan/internal/model"

	"github.com/shopspring/decimal"
)

// fakeClock returns a clock whose date can be moved between Add calls.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) set(t *testing.T, date string) {
	t.Helper()
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	c.now = d.Add(15 * time.Hour)
}

func addOn(t *testing.T, l *Log, c *fakeClock, date string, income int64) model.Record {
	t.Helper()
	c.set(t, date)
	return l.Add(decimal.NewFromInt(income), model.SecondClass, true, model.Balancer, 12)
}

func dates(l *Log) []string {
	var out []string
	for r := range l.All() {
		out = append(out, r.Date())
	}
	return out
}

func TestNewLogIsEmpty(t *testing.T) {
	l := New()
	if !l.IsEmpty() {
		t.Fatal("new log is not empty")
	}
	if l.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", l.Size())
	}
	if _, ok := l.Search(2025, 1); ok {
		t.Fatal("Search on empty log found a record")
	}
}

func TestAdd_StampsDateFromClock(t *testing.T) {
	c := &fakeClock{}
	l := New(WithClock(c.Now))

	rec := addOn(t, l, c, "2025-03-14", 1000)
	if rec.Date() != "2025-03-14" {
		t.Fatalf("Date() = %q, want 2025-03-14", rec.Date())
	}
	if rec.ID.String() == "" {
		t.Fatal("record has no ID")
	}
	if l.IsEmpty() || l.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", l.Size())
	}
}

func TestAdd_OrdersDescendingForAnyInsertionOrder(t *testing.T) {
	want := []string{"2025-03-01", "2025-02-01", "2025-01-01"}
	orders := [][]string{
		{"2025-01-01", "2025-02-01", "2025-03-01"},
		{"2025-03-01", "2025-02-01", "2025-01-01"},
		{"2025-02-01", "2025-03-01", "2025-01-01"},
		{"2025-02-01", "2025-01-01", "2025-03-01"},
		{"2025-01-01", "2025-03-01", "2025-02-01"},
		{"2025-03-01", "2025-01-01", "2025-02-01"},
	}

	for _, order := range orders {
		c := &fakeClock{}
		l := New(WithClock(c.Now))
		for _, d := range order {
			addOn(t, l, c, d, 100)
		}
		if got := dates(l); !slices.Equal(got, want) {
			t.Errorf("insert %v -> %v, want %v", order, got, want)
		}
	}
}

func TestAdd_SameDateKeepsArrivalOrder(t *testing.T) {
	c := &fakeClock{}
	l := New(WithClock(c.Now))

	addOn(t, l, c, "2025-05-01", 1)
	addOn(t, l, c, "2025-05-10", 2)
	addOn(t, l, c, "2025-05-10", 3)
	addOn(t, l, c, "2025-04-30", 4)
	addOn(t, l, c, "2025-05-10", 5)

	var incomes []int64
	for r := range l.All() {
		incomes = append(incomes, r.Income.IntPart())
	}
	want := []int64{2, 3, 5, 1, 4}
	if !slices.Equal(incomes, want) {
		t.Fatalf("incomes in log order = %v, want %v", incomes, want)
	}
}

func TestSearch_ReturnsFirstMatchInLogOrder(t *testing.T) {
	c := &fakeClock{}
	l := New(WithClock(c.Now))

	addOn(t, l, c, "2025-06-02", 10)
	addOn(t, l, c, "2025-06-20", 20)
	addOn(t, l, c, "2025-07-01", 30)

	rec, ok := l.Search(2025, 6)
	if !ok {
		t.Fatal("Search(2025, 6) found nothing")
	}
	if rec.Income.IntPart() != 20 {
		t.Errorf("Search(2025, 6) income = %s, want 20 (most recent in June)", rec.Income)
	}

	if _, ok := l.Search(2025, 8); ok {
		t.Error("Search(2025, 8) found a record, want none")
	}
	if _, ok := l.Search(2024, 6); ok {
		t.Error("Search(2024, 6) found a record, want none")
	}
}

func TestSearch_InvalidMonthNotFound(t *testing.T) {
	c := &fakeClock{}
	l := New(WithClock(c.Now))
	addOn(t, l, c, "2025-01-15", 10)

	for _, m := range []int{0, 13, -1} {
		if _, ok := l.Search(2025, m); ok {
			t.Errorf("Search(2025, %d) found a record, want none", m)
		}
	}
}

func TestSearch_ReturnsCopy(t *testing.T) {
	c := &fakeClock{}
	l := New(WithClock(c.Now))
	addOn(t, l, c, "2025-01-15", 10)

	rec, _ := l.Search(2025, 1)
	rec.SetSaving(decimal.NewFromInt(99))
	rec.RiskTier = model.Gambler

	again, _ := l.Search(2025, 1)
	if again.Saving != nil {
		t.Error("mutating a search result leaked into the log")
	}
	if again.RiskTier != model.Balancer {
		t.Errorf("RiskTier = %s, want Balancer", again.RiskTier)
	}
}

func TestAnnotate(t *testing.T) {
	c := &fakeClock{}
	l := New(WithClock(c.Now))
	addOn(t, l, c, "2025-01-15", 4000)

	saving := decimal.NewFromInt(800)
	spending := decimal.NewFromInt(2200)
	if !l.Annotate(2025, 1, model.Amounts{Saving: &saving, Spending: &spending}) {
		t.Fatal("Annotate(2025, 1) = false, want true")
	}
	if l.Annotate(2025, 2, model.Amounts{Saving: &saving}) {
		t.Fatal("Annotate(2025, 2) = true, want false")
	}

	rec, _ := l.Search(2025, 1)
	if rec.Saving == nil || !rec.Saving.Equal(saving) {
		t.Errorf("Saving = %v, want 800", rec.Saving)
	}
	if rec.Spending == nil || !rec.Spending.Equal(spending) {
		t.Errorf("Spending = %v, want 2200", rec.Spending)
	}
	if rec.Invest != nil {
		t.Errorf("Invest = %v, want unset", rec.Invest)
	}
}

func TestDisplay_IsLazyAndRestartable(t *testing.T) {
	c := &fakeClock{}
	l := New(WithClock(c.Now))
	addOn(t, l, c, "2025-01-15", 10)
	addOn(t, l, c, "2025-02-15", 20)

	var first []string
	for block := range l.Display() {
		first = append(first, block)
	}
	var second []string
	for block := range l.Display() {
		second = append(second, block)
	}
	if len(first) != 2 || !slices.Equal(first, second) {
		t.Fatalf("Display() not restartable: %d then %d blocks", len(first), len(second))
	}
	if !strings.HasPrefix(first[0], "Date: 2025-02-15\n") {
		t.Errorf("first block = %q, want most recent record first", first[0])
	}

	// Stopping early must not panic.
	for range l.Display() {
		break
	}
}

func TestFormatRecord(t *testing.T) {
	c := &fakeClock{}
	l := New(WithClock(c.Now))
	rec := addOn(t, l, c, "2025-01-15", 1000)

	out := FormatRecord(rec)
	for _, want := range []string{
		"Date: 2025-01-15",
		"  Income: 1000.00",
		"  Class Year: 2/c",
		"  Over 21: Yes",
		"  Risk Level: Balancer",
		"  Simulation Length: 12 months",
		strings.Repeat("-", 30),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatRecord missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Saving:") {
		t.Error("FormatRecord printed an unset saving figure")
	}
}

func TestLocked(t *testing.T) {
	c := &fakeClock{}
	c.set(t, "2025-01-15")
	s := NewLocked(New(WithClock(c.Now)))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 25; j++ {
				s.Add(decimal.NewFromInt(1), model.FirstClass, false, model.Saver, 1)
				_ = s.Size()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if got := s.Size(); got != 200 {
		t.Fatalf("Size() = %d, want 200", got)
	}
	if got := len(s.Snapshot()); got != 200 {
		t.Fatalf("len(Snapshot()) = %d, want 200", got)
	}
	if _, ok := s.Search(2025, 1); !ok {
		t.Fatal("Search(2025, 1) found nothing")
	}
}
