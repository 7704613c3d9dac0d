package digest

import (
	"fmt"
	"strings"

	"jobtrack-engine/internal/domain"
)

// MailSubject is the fixed subject line of the mail draft.
const MailSubject = "My 9AM Job Digest"

// Transcript renders the snapshot as plain text:
//
//	My 9AM Job Digest - 2026-01-15
//
//	1. Senior React Engineer at Acme
//	   Location: Bangalore (Remote)
//	   Score: 100/100
//	   Link: https://...
//
// When updates is non-empty a "Recent Status Updates" section follows, at
// most five entries, newest first.
func Transcript(snap Snapshot, updates []domain.StatusUpdate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My 9AM Job Digest - %s\n\n", snap.Date)

	for i, e := range snap.Entries {
		fmt.Fprintf(&b, "%d. %s at %s\n", i+1, e.Title, e.Company)
		fmt.Fprintf(&b, "   Location: %s (%s)\n", e.Location, e.Mode)
		fmt.Fprintf(&b, "   Score: %d/100\n", e.Score)
		fmt.Fprintf(&b, "   Link: %s\n\n", e.ApplyURL)
	}

	if len(updates) > 0 {
		if len(updates) > 5 {
			updates = updates[:5]
		}
		b.WriteString("Recent Status Updates\n")
		for _, u := range updates {
			fmt.Fprintf(&b, "- %s at %s: %s\n", u.JobTitle, u.Company, u.Status)
		}
	}

	return b.String()
}

// MailDraft is the mailto-style payload the UI opens in the user's mail
// client. Nothing is sent from here.
type MailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto"`
}

// RenderMailDraft builds the draft from the snapshot transcript.
func RenderMailDraft(snap Snapshot, updates []domain.StatusUpdate) MailDraft {
	body := Transcript(snap, updates)
	return MailDraft{
		Subject: MailSubject,
		Body:    body,
		Mailto: fmt.Sprintf("mailto:?subject=%s&body=%s",
			encodeComponent(MailSubject), encodeComponent(body)),
	}
}

// encodeComponent percent-encodes the way encodeURIComponent does; notably
// spaces become %20, not +.
func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for _, c := range []byte(s) {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '_' || c == '.' || c == '!' || c == '~' ||
			c == '*' || c == '\'' || c == '(' || c == ')':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xF])
		}
	}
	return b.String()
}
