// Package report renders a completed intake record and its diagnosis into
// the PDF report document.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"braincheck/internal/config"
	"braincheck/internal/imaging"
	"braincheck/internal/session"
)

// ErrNoDiagnosis indicates the record has not completed classification.
var ErrNoDiagnosis = errors.New("record has no diagnosis")

// Assembler renders report documents.
type Assembler struct {
	title      string
	disclaimer string
	logger     *slog.Logger
}

// NewAssembler creates an Assembler from report configuration.
func NewAssembler(cfg *config.ReportConfig, logger *slog.Logger) *Assembler {
	return &Assembler{
		title:      cfg.Title,
		disclaimer: cfg.Disclaimer,
		logger:     logger.With("system", "report"),
	}
}

// Assemble renders the record into PDF bytes. The scan thumbnail is written
// to a temp directory for embedding; a failure there degrades to a
// placeholder and never fails the document.
func (a *Assembler) Assemble(rec *session.Record, generated time.Time) ([]byte, error) {
	if rec.Diagnosis == "" {
		return nil, ErrNoDiagnosis
	}

	tempDir, err := os.MkdirTemp("", "braincheck-report-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	imagePath := a.writeThumbnail(rec, tempDir)

	formJSON, err := buildForm(a.title, a.disclaimer, rec, generated, imagePath)
	if err != nil {
		return nil, fmt.Errorf("build report form: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(formJSON), &buf, nil); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	return buf.Bytes(), nil
}

// writeThumbnail encodes the original scan for embedding. An empty return
// means the report gets a placeholder instead.
func (a *Assembler) writeThumbnail(rec *session.Record, tempDir string) string {
	if rec.Image == nil {
		a.logger.Warn("no scan image on record", "session", rec.ID)
		return ""
	}

	data, err := imaging.EncodePNG(rec.Image)
	if err != nil {
		a.logger.Warn("thumbnail encode failed", "session", rec.ID, "error", err)
		return ""
	}

	path := filepath.Join(tempDir, "scan.png")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		a.logger.Warn("thumbnail write failed", "session", rec.ID, "error", err)
		return ""
	}

	return path
}
