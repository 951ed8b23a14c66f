// Package orchestrator routes inbound channel events through the intake
// machine, runs the image pipeline and report assembly, and sends replies
// and documents back through the channel.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"braincheck/internal/channel"
	"braincheck/internal/classify"
	"braincheck/internal/config"
	"braincheck/internal/imaging"
	"braincheck/internal/intake"
	"braincheck/internal/report"
	"braincheck/internal/session"
	"braincheck/pkg/archive"
	"braincheck/pkg/formatting"
	"braincheck/pkg/lifecycle"
)

// User-facing failure notices. Decode and collaborator failures terminate
// the session; the user restarts with /start.
const (
	replyFormatError     = "Unsupported image format. Please try JPG or PNG, then send /start to begin again."
	replyClassifierError = "Analysis is temporarily unavailable. Please send /start to try again later."
	replyReportError     = "Could not generate the report. Please send /start to try again."
)

// Orchestrator drives one worker per inbound event. Events for the same
// session serialize on the store's per-session lock; events for different
// sessions run concurrently.
type Orchestrator struct {
	sessions   *session.Store
	sender     channel.Sender
	classifier classify.Classifier
	reports    *report.Assembler
	archive    archive.System
	logger     *slog.Logger

	workers         int
	classifyTimeout time.Duration
	reportFilename  string
}

// New creates an Orchestrator from configuration and its collaborators.
func New(
	cfg *config.Config,
	sessions *session.Store,
	sender channel.Sender,
	classifier classify.Classifier,
	reports *report.Assembler,
	arc archive.System,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		sessions:        sessions,
		sender:          sender,
		classifier:      classifier,
		reports:         reports,
		archive:         arc,
		logger:          logger.With("system", "orchestrator"),
		workers:         cfg.Intake.Workers,
		classifyTimeout: cfg.Classifier.TimeoutDuration(),
		reportFilename:  cfg.Report.Filename,
	}
}

// Run consumes the event stream until the coordinator shuts down, then
// drains in-flight workers.
func (o *Orchestrator) Run(lc *lifecycle.Coordinator, events <-chan channel.Event) {
	ctx := lc.Context()

	g := new(errgroup.Group)
	g.SetLimit(o.workers)

	for {
		select {
		case <-ctx.Done():
			g.Wait()
			o.logger.Info("orchestrator stopped")
			return
		case ev, ok := <-events:
			if !ok {
				g.Wait()
				return
			}
			g.Go(func() error {
				o.handle(ctx, ev)
				return nil
			})
		}
	}
}

func (o *Orchestrator) handle(ctx context.Context, ev channel.Event) {
	defer func() {
		// fail safe: an unexpected panic terminates the session rather
		// than leaving a half-processed record behind
		if r := recover(); r != nil {
			o.logger.Error("event handling panicked", "session", ev.SessionID, "panic", r)
			o.sessions.Remove(ev.SessionID)
		}
	}()

	rec, release := o.sessions.Acquire(ev.SessionID)
	defer release()

	res := intake.Advance(rec, ev)

	if res.Action == intake.ActionClassify {
		o.classifyAndReport(ctx, rec, ev)
	} else if res.Reply != "" {
		o.reply(ctx, rec.ID, res.Reply)
	}

	if rec.Step == session.StepTerminal {
		o.sessions.Remove(rec.ID)
	}
}

// classifyAndReport runs the image pipeline for a photo accepted at the
// image step: decode, normalize, classify, assemble, deliver.
func (o *Orchestrator) classifyAndReport(ctx context.Context, rec *session.Record, ev channel.Event) {
	blob := ev.LargestPhoto()

	img, format, err := imaging.Decode(blob)
	if err != nil {
		o.logger.Warn("photo decode failed", "session", rec.ID, "error", err)
		rec.Step = session.StepTerminal
		o.reply(ctx, rec.ID, replyFormatError)
		return
	}

	o.logger.Info(
		"photo accepted",
		"session", rec.ID,
		"format", format,
		"size", formatting.FormatBytes(int64(len(blob)), 1),
	)
	rec.Image = img

	tensor := imaging.Normalize(img, o.classifier.Preprocessing())

	cctx, cancel := context.WithTimeout(ctx, o.classifyTimeout)
	defer cancel()

	label, err := o.classifier.Classify(cctx, tensor)
	if err != nil {
		o.logger.Error("classification failed", "session", rec.ID, "error", err)
		rec.Step = session.StepTerminal
		o.reply(ctx, rec.ID, replyClassifierError)
		return
	}
	rec.Diagnosis = label

	o.reply(ctx, rec.ID, fmt.Sprintf("Prediction: %s", label))
	o.reply(ctx, rec.ID, "Generating PDF report...")

	pdf, err := o.reports.Assemble(rec, time.Now())
	if err != nil {
		o.logger.Error("report assembly failed", "session", rec.ID, "error", err)
		rec.Step = session.StepTerminal
		o.reply(ctx, rec.ID, replyReportError)
		return
	}

	o.sendReport(ctx, rec.ID, pdf)
	o.archiveReport(ctx, rec.ID, pdf)

	rec.Step = session.StepTerminal
}

// reply sends a text response. Delivery failures surface in the log, not in
// the session record.
func (o *Orchestrator) reply(ctx context.Context, id, text string) {
	if err := o.sender.SendText(ctx, id, text); err != nil {
		level := slog.LevelError
		if errors.Is(err, channel.ErrNotConnected) {
			level = slog.LevelWarn
		}
		o.logger.Log(ctx, level, "reply delivery failed", "session", id, "error", err)
	}
}

func (o *Orchestrator) sendReport(ctx context.Context, id string, pdf []byte) {
	if err := o.sender.SendDocument(ctx, id, o.reportFilename, pdf); err != nil {
		o.logger.Error("report delivery failed", "session", id, "error", err)
		o.reply(ctx, id, "Could not deliver the PDF report.")
		return
	}

	o.logger.Info(
		"report delivered",
		"session", id,
		"filename", o.reportFilename,
		"size", formatting.FormatBytes(int64(len(pdf)), 1),
	)
}

// archiveReport uploads a best-effort copy of the generated report.
func (o *Orchestrator) archiveReport(ctx context.Context, id string, pdf []byte) {
	if !o.archive.Enabled() {
		return
	}

	key := "reports/" + uuid.NewString() + ".pdf"
	if err := o.archive.Put(ctx, key, pdf, "application/pdf"); err != nil {
		o.logger.Warn("report archive failed", "session", id, "error", err)
		return
	}

	o.logger.Info("report archived", "session", id, "key", key)
}
