// Package intake drives one session through the guided data-entry flow. The
// transition function is pure over (record step, event kind): it mutates
// only the record it is given and returns the reply to send.
package intake

import (
	"braincheck/internal/channel"
	"braincheck/internal/session"
)

// Action tells the orchestrator what a transition requires beyond sending
// the reply.
type Action int

const (
	// ActionReply sends the reply; the session stays active.
	ActionReply Action = iota
	// ActionClassify runs the image pipeline for the pending photo.
	ActionClassify
	// ActionEnd sends the reply and disposes the session.
	ActionEnd
)

// Result is the outcome of one transition.
type Result struct {
	Reply  string
	Action Action
}

// Advance applies one inbound event to the record. Events whose kind does
// not match the current step re-prompt without advancing; commands are
// accepted in any state.
func Advance(rec *session.Record, ev channel.Event) Result {
	if ev.Kind == channel.KindCommand {
		return command(rec, ev.Command)
	}

	if rec.Step == session.StepTerminal {
		return Result{Reply: replyRestart, Action: ActionEnd}
	}

	switch ev.Kind {
	case channel.KindText:
		return text(rec, ev.Text)
	case channel.KindPhoto:
		if rec.Step == session.StepImage {
			return Result{Action: ActionClassify}
		}
		// a photo ahead of the image step never touches the record
		return Result{Reply: prompt(rec.Step)}
	case channel.KindFile:
		if rec.Step == session.StepImage {
			return Result{Reply: replyPhotoNotFile}
		}
		return Result{Reply: prompt(rec.Step)}
	}

	return Result{Reply: helpText}
}

func command(rec *session.Record, cmd string) Result {
	switch cmd {
	case "start":
		rec.Reset()
		return Result{Reply: replyWelcome}
	case "cancel":
		rec.Step = session.StepTerminal
		return Result{Reply: replyCancelled, Action: ActionEnd}
	case "help":
		return Result{Reply: helpText}
	default:
		return Result{Reply: replyUnknownCommand}
	}
}

func text(rec *session.Record, raw string) Result {
	trimmed := trim(raw)

	switch rec.Step {
	case session.StepName:
		if trimmed == "" {
			return Result{Reply: prompt(rec.Step)}
		}
		rec.Name = titleCase(trimmed)
		rec.Step = session.StepAge
	case session.StepAge:
		if trimmed == "" {
			return Result{Reply: prompt(rec.Step)}
		}
		rec.Age = trimmed
		rec.Step = session.StepGender
	case session.StepGender:
		if trimmed == "" {
			return Result{Reply: prompt(rec.Step)}
		}
		rec.Gender = capitalize(trimmed)
		rec.Step = session.StepSymptoms
	case session.StepSymptoms:
		if trimmed == "" {
			return Result{Reply: prompt(rec.Step)}
		}
		rec.Symptoms = splitList(raw)
		rec.Step = session.StepReason
	case session.StepReason:
		if trimmed == "" {
			return Result{Reply: prompt(rec.Step)}
		}
		rec.Reasons = splitList(raw)
		rec.Step = session.StepImage
	case session.StepImage:
		return Result{Reply: replyPhotoNotText}
	}

	return Result{Reply: prompt(rec.Step)}
}
