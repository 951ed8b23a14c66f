package intake

import "braincheck/internal/session"

const (
	replyWelcome        = "Welcome to BrainCheck. What is the patient's name?"
	replyCancelled      = "Conversation cancelled."
	replyRestart        = "No intake in progress. Send /start to begin."
	replyUnknownCommand = "Unknown command. Send /help for usage."
	replyPhotoNotText   = "Please send the MRI as an in-chat photo."
	replyPhotoNotFile   = "Please send the MRI as an in-chat photo, not as a file."
)

const helpText = `BrainCheck Help

/start  - begin a new MRI analysis
/cancel - abort the current intake
/help   - show this message

Flow: name, age, gender, symptoms, reason for scan, MRI photo.
Send the MRI as a photo (JPEG or PNG). You will receive a prediction and a PDF report.
This service is for demonstration purposes and does not replace medical advice.`

var prompts = map[session.Step]string{
	session.StepName:     "What is the patient's name?",
	session.StepAge:      "Patient's age?",
	session.StepGender:   "Gender? (Male / Female / Prefer not to say)",
	session.StepSymptoms: "List symptoms (comma-separated), e.g. Memory loss, Confusion, Headaches, Dizziness",
	session.StepReason:   "Reason for scan? (comma-separated), e.g. Routine check, Family history, Head trauma",
	session.StepImage:    "Upload the MRI image (as a photo, not as a file).",
}

func prompt(step session.Step) string {
	if p, ok := prompts[step]; ok {
		return p
	}
	return replyRestart
}
