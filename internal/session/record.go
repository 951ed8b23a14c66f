// Package session holds per-user intake state. Each active conversation owns
// exactly one Record, keyed by session id; nothing about a user's flow lives
// outside their record.
package session

import (
	"image"
	"time"

	"braincheck/internal/classify"
)

// Step is a position in the guided intake flow.
type Step int

// Intake steps in strict order. A record only moves forward through this
// sequence or jumps to StepTerminal.
const (
	StepName Step = iota
	StepAge
	StepGender
	StepSymptoms
	StepReason
	StepImage
	StepTerminal
)

var stepNames = map[Step]string{
	StepName:     "name",
	StepAge:      "age",
	StepGender:   "gender",
	StepSymptoms: "symptoms",
	StepReason:   "reason",
	StepImage:    "image",
	StepTerminal: "terminal",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Next returns the step that follows s in the intake order.
func (s Step) Next() Step {
	if s >= StepTerminal {
		return StepTerminal
	}
	return s + 1
}

// Record is the mutable state of one active conversation.
type Record struct {
	ID        string
	Step      Step
	Name      string
	Age       string
	Gender    string
	Symptoms  []string
	Reasons   []string
	Image     image.Image
	Diagnosis classify.Label
	CreatedAt time.Time
}

// Reset discards all collected answers and returns the record to the first
// step, keeping only its identity.
func (r *Record) Reset() {
	r.Step = StepName
	r.Name = ""
	r.Age = ""
	r.Gender = ""
	r.Symptoms = nil
	r.Reasons = nil
	r.Image = nil
	r.Diagnosis = ""
}
