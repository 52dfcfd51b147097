package domain

import (
	"strings"
	"time"
)

// RequestType distinguishes spending hours (leave) from adding them
// (credit). Constants carry the backend's wire values.
type RequestType string

const (
	RequestTypeLeave  RequestType = "gozo"
	RequestTypeCredit RequestType = "concessao"
)

func ParseRequestType(s string) (RequestType, error) {
	switch RequestType(s) {
	case RequestTypeLeave, RequestTypeCredit:
		return RequestType(s), nil
	default:
		return "", NewValidationError("type", "must be gozo or concessao")
	}
}

// RequestStatus is the approval state of a request. Transitions happen only
// through admin action on the backend; the client just displays them.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pendente"
	RequestApproved RequestStatus = "aprovado"
	RequestDenied   RequestStatus = "negado"
)

// Actionable reports whether a moderation view should still offer
// approve/deny controls for a request row.
func (s RequestStatus) Actionable() bool {
	return s == RequestPending
}

// Request is an hour-bank request as returned by the backend.
type Request struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Type      RequestType   `json:"type"`
	Hours     float64       `json:"hours"`
	Reason    string        `json:"reason"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	// Requester is populated only on the admin listing (backend join).
	Requester *Profile `json:"requester,omitempty"`
}

// DraftState is the client-side lifecycle of an unsubmitted request.
type DraftState string

const (
	DraftEditing    DraftState = "editing"
	DraftSubmitting DraftState = "submitting"
	DraftSubmitted  DraftState = "submitted"
	DraftFailed     DraftState = "failed"
)

// draftTransitions defines the allowed draft state machine transitions.
// Failed drafts return to submitting so the user can retry without
// re-entering data.
var draftTransitions = map[DraftState][]DraftState{
	DraftEditing:    {DraftSubmitting},
	DraftSubmitting: {DraftSubmitted, DraftFailed},
	DraftFailed:     {DraftSubmitting},
}

func (s DraftState) CanTransitionTo(next DraftState) bool {
	for _, allowed := range draftTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RequestDraft is a request being composed. Amount may be entered in hours
// or days and is normalized on submission.
type RequestDraft struct {
	Type   RequestType
	Amount float64
	Unit   Unit
	Reason string

	State         DraftState
	FailureReason string
}

func NewRequestDraft(t RequestType, amount float64, unit Unit, reason string) *RequestDraft {
	return &RequestDraft{Type: t, Amount: amount, Unit: unit, Reason: reason, State: DraftEditing}
}

// Hours is the normalized amount sent to the backend.
func (d *RequestDraft) Hours() float64 {
	return ToHours(d.Amount, d.Unit)
}

// Validate runs every client-side check. A failing draft never leaves the
// process.
func (d *RequestDraft) Validate() error {
	if _, err := ParseRequestType(string(d.Type)); err != nil {
		return err
	}
	if d.Unit != UnitHours && d.Unit != UnitDays {
		return NewValidationError("unit", "must be hours or days")
	}
	if d.Amount <= 0 {
		return NewValidationError("amount", "must be greater than zero")
	}
	if !ValidGranularity(d.Hours()) {
		return NewValidationError("amount", "must be a multiple of half an hour")
	}
	if strings.TrimSpace(d.Reason) == "" {
		return NewValidationError("reason", "is required")
	}
	return nil
}

// Begin moves the draft into submission. Allowed from editing and from a
// previous failure (retry keeps the entered data).
func (d *RequestDraft) Begin() error {
	if !d.State.CanTransitionTo(DraftSubmitting) {
		return NewValidationError("draft", "submission already in progress or finished")
	}
	d.State = DraftSubmitting
	d.FailureReason = ""
	return nil
}

// Complete marks the submission accepted by the backend.
func (d *RequestDraft) Complete() {
	d.State = DraftSubmitted
}

// Fail preserves the draft and records the user-facing failure reason.
func (d *RequestDraft) Fail(reason string) {
	d.State = DraftFailed
	d.FailureReason = reason
}
