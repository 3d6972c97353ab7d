package dialog

import (
	"fmt"
	"strings"

	"fjacquet/flatbot/internal/models"
	"fjacquet/flatbot/internal/session"
)

// User-facing message texts. Kept together so the wording stays consistent
// across flows.
const (
	msgStartHint    = "Send a receipt photo, or type the entry as: amount, category, description"
	msgFormatHint   = "Please use the format: amount, category, description (e.g. 500, Maintenance, Lobby cleaning)"
	msgIdleHint     = "Use /start to see what I can do."
	msgPhotoHint    = "Start an entry with /expense or /income before sending a photo."
	msgYesOrNo      = "Please answer yes or no."
	msgSkipRejected = "This field is required and cannot be skipped. "

	msgUploadFailed  = "Sorry, I couldn't store the receipt image. Please try again."
	msgOCRFailed     = "Sorry, I couldn't read the receipt image. Please try again."
	msgExtractFailed = "I couldn't make sense of the receipt. Please type the entry manually as: amount, category, description"
	msgCommitFailed  = "Sorry, I couldn't save the record. Reply yes to try again."
	msgAdapterFailed = "Something went wrong talking to the spreadsheet. Please start over."

	msgNothingToFix = "Send the corrected entry as: amount, category, description — or /start to begin again."
)

// transaction follow-up prompts, by field.
var transactionPrompts = map[session.Field]string{
	session.FieldAmount:      "What is the amount?",
	session.FieldCategory:    "What is the category?",
	session.FieldDescription: "What is this expense/income for?",
	session.FieldDate:        "What is the date? (YYYY-MM-DD)",
}

// transactionQuestions builds the follow-up queue for the given missing
// fields, preserving their order.
func transactionQuestions(missing []session.Field) []session.Question {
	qs := make([]session.Question, 0, len(missing))
	for _, f := range missing {
		qs = append(qs, session.Question{Field: f, Prompt: transactionPrompts[f]})
	}
	return qs
}

// flatQuestions is the fixed flat-info script. Required fields reject "skip";
// the trailing tenant/email questions accept it.
func flatQuestions() []session.Question {
	return []session.Question{
		{Field: session.FieldFlatNumber, Prompt: "Enter flat number:"},
		{Field: session.FieldFloorNumber, Prompt: "Enter floor number:"},
		{Field: session.FieldOwnerName, Prompt: "Enter owner name:"},
		{Field: session.FieldMaintenanceAmount, Prompt: "Enter monthly maintenance amount:"},
		{Field: session.FieldPhoneNumber, Prompt: "Enter phone number:"},
		{Field: session.FieldOccupied, Prompt: "Is the flat occupied? (yes/no)"},
		{Field: session.FieldTenantName, Prompt: "Enter tenant name (or skip):", Optional: true},
		{Field: session.FieldEmail, Prompt: "Enter email (or skip):", Optional: true},
	}
}

// collectionQuestions is the short collection-setup script. Completing the
// amount question initializes the period immediately.
func collectionQuestions() []session.Question {
	return []session.Question{
		{Field: session.FieldCollectionLabel, Prompt: "Name this collection (or skip for maintenance):", Optional: true},
		{Field: session.FieldCollectionAmount, Prompt: "Enter the amount per flat:"},
	}
}

// confirmationText renders the draft for the yes/no confirmation step.
func confirmationText(s *session.Session) string {
	d := s.Tx
	var b strings.Builder
	b.WriteString("Please confirm this entry:\n")
	if d.Amount != nil {
		fmt.Fprintf(&b, "Amount: %s\n", models.FormatAmount(*d.Amount))
	}
	fmt.Fprintf(&b, "Category: %s\n", d.Category)
	fmt.Fprintf(&b, "Description: %s\n", d.Description)
	if d.Date != "" {
		fmt.Fprintf(&b, "Date: %s\n", d.Date)
	}
	fmt.Fprintf(&b, "Type: %s\n", s.Mode.EntryType())
	if s.ReceiptURL != "" {
		fmt.Fprintf(&b, "Receipt: %s\n", s.ReceiptURL)
	}
	b.WriteString("Reply yes to save, or no to edit.")
	return b.String()
}
