package domain

import (
	"fmt"
	"time"
)

// ApplicationStatus tracks where a posting sits in the user's pipeline.
type ApplicationStatus string

const (
	StatusNotApplied ApplicationStatus = "Not Applied"
	StatusApplied    ApplicationStatus = "Applied"
	StatusSelected   ApplicationStatus = "Selected"
	StatusRejected   ApplicationStatus = "Rejected"
)

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case StatusNotApplied, StatusApplied, StatusSelected, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// StatusUpdate is one ledger entry. The ledger is owned by the UI layer;
// the digest only reads the most recent few for its summary section.
type StatusUpdate struct {
	PostingID string            `json:"postingId"`
	JobTitle  string            `json:"jobTitle"`
	Company   string            `json:"company"`
	Status    ApplicationStatus `json:"status"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
