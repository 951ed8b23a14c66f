package session_test

import (
	"testing"

	"braincheck/internal/session"
)

func TestStepOrder(t *testing.T) {
	order := []session.Step{
		session.StepName,
		session.StepAge,
		session.StepGender,
		session.StepSymptoms,
		session.StepReason,
		session.StepImage,
		session.StepTerminal,
	}

	for i := 0; i < len(order)-1; i++ {
		if got := order[i].Next(); got != order[i+1] {
			t.Errorf("%v.Next() = %v, want %v", order[i], got, order[i+1])
		}
	}

	if got := session.StepTerminal.Next(); got != session.StepTerminal {
		t.Errorf("terminal.Next() = %v, want terminal", got)
	}
}

func TestRecordReset(t *testing.T) {
	rec := &session.Record{
		ID:        "user-1",
		Step:      session.StepImage,
		Name:      "Jane Doe",
		Age:       "70",
		Gender:    "Female",
		Symptoms:  []string{"Memory loss"},
		Reasons:   []string{"Routine check"},
		Diagnosis: "NonDemented",
	}

	rec.Reset()

	if rec.ID != "user-1" {
		t.Errorf("Reset changed ID to %q", rec.ID)
	}
	if rec.Step != session.StepName {
		t.Errorf("Step = %v, want StepName", rec.Step)
	}
	if rec.Name != "" || rec.Age != "" || rec.Gender != "" {
		t.Error("Reset did not clear demographic fields")
	}
	if rec.Symptoms != nil || rec.Reasons != nil {
		t.Error("Reset did not clear findings")
	}
	if rec.Image != nil || rec.Diagnosis != "" {
		t.Error("Reset did not clear diagnostic fields")
	}
}
