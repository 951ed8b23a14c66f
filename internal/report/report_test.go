package report_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"

	"braincheck/internal/classify"
	"braincheck/internal/config"
	"braincheck/internal/report"
	"braincheck/internal/session"
)

func newAssembler(t *testing.T) *report.Assembler {
	t.Helper()

	cfg := &config.ReportConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize config: %v", err)
	}

	return report.NewAssembler(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func scan() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.Gray{Y: uint8(x * 8)})
		}
	}
	return img
}

func completedRecord() *session.Record {
	return &session.Record{
		ID:        "user-1",
		Step:      session.StepImage,
		Name:      "Jane Doe",
		Age:       "70",
		Gender:    "Female",
		Symptoms:  []string{"Memory loss", "Confusion"},
		Reasons:   []string{"Routine check"},
		Image:     scan(),
		Diagnosis: classify.VeryMildDemented,
	}
}

func TestAssemble(t *testing.T) {
	pdf, err := newAssembler(t).Assemble(completedRecord(), time.Now())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if len(pdf) == 0 {
		t.Fatal("empty document")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("document does not start with PDF magic: %q", pdf[:min(8, len(pdf))])
	}
}

func TestAssembleWithoutImage(t *testing.T) {
	rec := completedRecord()
	rec.Image = nil

	pdf, err := newAssembler(t).Assemble(rec, time.Now())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("placeholder document is not a PDF")
	}
}

func TestAssembleWithEmptyFindings(t *testing.T) {
	rec := completedRecord()
	rec.Symptoms = nil
	rec.Reasons = nil

	pdf, err := newAssembler(t).Assemble(rec, time.Now())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("document is not a PDF")
	}
}

func TestAssembleLongFindingsPaginate(t *testing.T) {
	rec := completedRecord()
	rec.Symptoms = nil
	for i := 0; i < 120; i++ {
		rec.Symptoms = append(rec.Symptoms, "Recurring headache episodes reported in the evening")
	}

	pdf, err := newAssembler(t).Assemble(rec, time.Now())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("document is not a PDF")
	}
}

func TestAssembleRequiresDiagnosis(t *testing.T) {
	rec := completedRecord()
	rec.Diagnosis = ""

	if _, err := newAssembler(t).Assemble(rec, time.Now()); !errors.Is(err, report.ErrNoDiagnosis) {
		t.Errorf("err = %v, want ErrNoDiagnosis", err)
	}
}
