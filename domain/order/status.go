package order

import (
	"encoding/json"
	"strings"

	"backoffice/pkg/errors"
)

// Status Order status enum
type Status string

const (
	StatusPending        Status = "pending"
	StatusAccepted       Status = "accepted"
	StatusRejected       Status = "rejected"
	StatusPacked         Status = "packed"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	StatusReturned       Status = "returned"
	StatusRefunded       Status = "refunded"
)

// AllStatuses in lifecycle order.
var AllStatuses = []Status{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusPacked,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
	StatusReturned,
	StatusRefunded,
}

// transitions is the whole whitelist; a status absent from it is terminal.
var transitions = map[Status][]Status{
	StatusPending:        {StatusAccepted, StatusRejected},
	StatusAccepted:       {StatusPacked, StatusCancelled},
	StatusPacked:         {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {StatusReturned, StatusRefunded},
}

// ParseStatus accepts the wire value in any case.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToLower(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", errors.Validation(map[string]string{"status": "unknown order status " + s})
}

func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition exists.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Label is the admin-facing name of the status.
func (s Status) Label() string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// NextStatuses returns the statuses an order in s may move to. The slice is a copy.
func NextStatuses(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is in the whitelist.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusUpdate is the body of PATCH /api/orders/:id/status.
// Its fields are private: NewStatusUpdate is the only way to build one,
// so an illegal transition cannot be expressed.
type StatusUpdate struct {
	from    Status
	to      Status
	comment string
}

// NewStatusUpdate validates from -> to against the whitelist.
func NewStatusUpdate(from, to Status, comment string) (StatusUpdate, error) {
	if !CanTransition(from, to) {
		return StatusUpdate{}, NewInvalidTransitionError(from, to)
	}
	return StatusUpdate{from: from, to: to, comment: strings.TrimSpace(comment)}, nil
}

func (u StatusUpdate) From() Status    { return u.from }
func (u StatusUpdate) To() Status      { return u.to }
func (u StatusUpdate) Comment() string { return u.comment }

// IsZero reports whether u was built without NewStatusUpdate.
func (u StatusUpdate) IsZero() bool { return u.to == "" }

func (u StatusUpdate) MarshalJSON() ([]byte, error) {
	body := struct {
		Status  Status `json:"status"`
		Comment string `json:"comment,omitempty"`
	}{Status: u.to, Comment: u.comment}
	return json.Marshal(body)
}
