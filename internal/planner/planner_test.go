package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/history"
	"github.com/theirongolddev/payplan/internal/intake"
	"github.com/theirongolddev/payplan/internal/model"
)

type fakeJournal struct {
	appended []model.Record
	err      error
}

func (j *fakeJournal) Append(_ context.Context, rec model.Record, _ allocation.Breakdown) error {
	if j.err != nil {
		return j.err
	}
	j.appended = append(j.appended, rec)
	return nil
}

func fixedLog() *history.Log {
	return history.New(history.WithClock(func() time.Time {
		return time.Date(2025, 4, 1, 15, 30, 0, 0, time.UTC)
	}))
}

func validForm() intake.Form {
	return intake.Form{
		Income:    "1000",
		ClassYear: "2/c",
		Over21:    "Yes",
		RiskTier:  "Balancer",
		Months:    "1",
	}
}

func TestSubmit_RecordsAndComputes(t *testing.T) {
	log := fixedLog()
	j := &fakeJournal{}
	p := New(log, WithJournal(j))

	res, err := p.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := res.Breakdown.InvestmentValue.StringFixed(2); got != "804.67" {
		t.Errorf("InvestmentValue = %s, want 804.67", got)
	}
	if got := res.Record.Date(); got != "2025-04-01" {
		t.Errorf("Date = %s, want 2025-04-01", got)
	}
	if log.Size() != 1 {
		t.Fatalf("log.Size() = %d, want 1", log.Size())
	}
	if len(j.appended) != 1 || j.appended[0].ID != res.Record.ID {
		t.Fatalf("journal appended %v, want the submitted record", j.appended)
	}
}

func TestSubmit_RejectedLeavesLogUntouched(t *testing.T) {
	cases := []struct {
		name string
		edit func(*intake.Form)
		msg  string
	}{
		{"placeholder class year", func(f *intake.Form) { f.ClassYear = intake.ClassYearPlaceholder }, MsgIncomplete},
		{"placeholder over 21", func(f *intake.Form) { f.Over21 = intake.Over21Placeholder }, MsgIncomplete},
		{"bad income", func(f *intake.Form) { f.Income = "lots" }, MsgInvalidNum},
		{"zero months", func(f *intake.Form) { f.Months = "0" }, MsgInvalidNum},
		{"months over limit", func(f *intake.Form) { f.Months = "1000000" }, MsgInvalidNum},
		{"income exponent", func(f *intake.Form) { f.Income = "1e5000000" }, MsgInvalidNum},
		{"unknown tier", func(f *intake.Form) { f.RiskTier = "YOLO" }, MsgInvalidTier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := fixedLog()
			j := &fakeJournal{}
			p := New(log, WithJournal(j))

			f := validForm()
			tc.edit(&f)
			_, err := p.Submit(context.Background(), f)
			if err == nil {
				t.Fatal("Submit returned nil error")
			}
			if got := UserMessage(err); got != tc.msg {
				t.Errorf("UserMessage = %q, want %q", got, tc.msg)
			}
			if !IsUserError(err) {
				t.Errorf("IsUserError(%v) = false", err)
			}
			if !log.IsEmpty() {
				t.Errorf("log.Size() = %d, want 0", log.Size())
			}
			if len(j.appended) != 0 {
				t.Errorf("journal appended %d, want 0", len(j.appended))
			}
		})
	}
}

func TestSubmit_JournalFailureKeepsResult(t *testing.T) {
	log := fixedLog()
	p := New(log, WithJournal(&fakeJournal{err: errors.New("disk full")}))

	if _, err := p.Submit(context.Background(), validForm()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if log.Size() != 1 {
		t.Fatalf("log.Size() = %d, want 1", log.Size())
	}
}

func TestUserMessage_Wrapped(t *testing.T) {
	err := fmt.Errorf("handling form: %w", &intake.IncompleteSelectionError{Fields: []string{intake.FieldRiskTier}})
	if got := UserMessage(err); got != MsgIncomplete {
		t.Errorf("UserMessage = %q, want %q", got, MsgIncomplete)
	}
	if got := UserMessage(errors.New("boom")); got != MsgUnexpected {
		t.Errorf("UserMessage = %q, want %q", got, MsgUnexpected)
	}
	if IsUserError(errors.New("boom")) {
		t.Error("IsUserError(boom) = true")
	}
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q, want empty", got)
	}
}

func TestResultView(t *testing.T) {
	p := New(fixedLog())
	res, err := p.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	v := res.View()
	if v.Breakdown.Spend != "300.00" || v.Breakdown.TotalInvested != "800.00" {
		t.Errorf("breakdown view = %+v", v.Breakdown)
	}
	if v.Breakdown.ROIPercent == nil || *v.Breakdown.ROIPercent != "0.58" {
		t.Errorf("ROIPercent = %v, want 0.58", v.Breakdown.ROIPercent)
	}
	if len(v.Breakdown.Slices) != 3 {
		t.Errorf("Slices = %d, want 3", len(v.Breakdown.Slices))
	}
	if v.Record.Income != "1000.00" || v.Record.Saving != nil {
		t.Errorf("record view = %+v", v.Record)
	}

	f := validForm()
	f.Income = "0"
	res, err = p.Submit(context.Background(), f)
	if err != nil {
		t.Fatalf("Submit zero income: %v", err)
	}
	if res.View().Breakdown.ROIPercent != nil {
		t.Error("ROIPercent for zero income should be nil")
	}
}

func TestEvaluate_DoesNotRecord(t *testing.T) {
	log := fixedLog()
	p := New(log)

	ev, err := p.Evaluate(validForm())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !log.IsEmpty() {
		t.Fatalf("log.Size() = %d after Evaluate, want 0", log.Size())
	}
	if ev.Submission.RiskTier != model.Balancer {
		t.Errorf("RiskTier = %s, want Balancer", ev.Submission.RiskTier)
	}

	res := p.Commit(context.Background(), ev)
	if log.Size() != 1 || !res.Breakdown.InvestmentValue.Equal(ev.Breakdown.InvestmentValue) {
		t.Fatalf("Commit: size=%d value=%s", log.Size(), res.Breakdown.InvestmentValue)
	}
}
