package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownStatus is returned when a transition targets a status
	// outside the lifecycle enum
	ErrUnknownStatus = errors.New("unknown status")

	// ErrNotDraft is returned when a proposal send is attempted from any
	// status other than utkast
	ErrNotDraft = errors.New("proposal can only be sent from draft")

	// ErrNotProposalSent is returned when an approval is attempted from any
	// status other than förslag-skickat
	ErrNotProposalSent = errors.New("proposal can only be approved after it has been sent")
)

// ChangeStatus returns a copy of the quote moved to the given status with
// the manual change recorded in the event log. Any status may move to any
// other; the event log keeps the history honest.
func ChangeStatus(q Quote, next Status, now time.Time) (Quote, error) {
	if !next.IsValid() {
		return Quote{}, fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}
	out := q.Clone()
	out.Status = next
	out.Events = append(out.Events, Event{
		Timestamp: now,
		Event:     fmt.Sprintf("Status manuellt ändrad till %q.", next.Label()),
	})
	return out, nil
}

// SendProposal returns a copy of the quote moved from utkast to
// förslag-skickat with the send recorded in the event log
func SendProposal(q Quote, now time.Time) (Quote, error) {
	if q.Status != StatusDraft {
		return Quote{}, ErrNotDraft
	}
	out := q.Clone()
	out.Status = StatusProposalSent
	out.Events = append(out.Events, Event{
		Timestamp: now,
		Event:     "Förslag skickat till kund (via portal)",
	})
	return out, nil
}

// ApproveProposal returns a copy of the quote moved from förslag-skickat to
// godkänd with the approval recorded in the event log
func ApproveProposal(q Quote, now time.Time) (Quote, error) {
	if q.Status != StatusProposalSent {
		return Quote{}, ErrNotProposalSent
	}
	out := q.Clone()
	out.Status = StatusApproved
	out.Events = append(out.Events, Event{
		Timestamp: now,
		Event:     "Förslag godkänt av administratör",
	})
	return out, nil
}
