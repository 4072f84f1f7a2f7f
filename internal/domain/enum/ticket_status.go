package enum

import (
	"database/sql/driver"
	"fmt"
)

// TicketStatus represents the workflow state of a service ticket
type TicketStatus string

const (
	TicketStatusNew         TicketStatus = "new"
	TicketStatusPendingDocs TicketStatus = "pending_docs"
	TicketStatusPriced      TicketStatus = "priced"
	TicketStatusPaid        TicketStatus = "paid"
	TicketStatusSubmitted   TicketStatus = "submitted"
	TicketStatusInProgress  TicketStatus = "in_progress"
	TicketStatusCompleted   TicketStatus = "completed"
	TicketStatusRejected    TicketStatus = "rejected"
	TicketStatusRefunded    TicketStatus = "refunded"
	TicketStatusCanceled    TicketStatus = "canceled"
)

// ticketStatuses is the closed set of valid statuses. Any target status
// outside this set must be rejected before any state is written.
var ticketStatuses = map[TicketStatus]struct{}{
	TicketStatusNew:         {},
	TicketStatusPendingDocs: {},
	TicketStatusPriced:      {},
	TicketStatusPaid:        {},
	TicketStatusSubmitted:   {},
	TicketStatusInProgress:  {},
	TicketStatusCompleted:   {},
	TicketStatusRejected:    {},
	TicketStatusRefunded:    {},
	TicketStatusCanceled:    {},
}

// IsValid reports whether the status is one of the enumerated values
func (s TicketStatus) IsValid() bool {
	_, ok := ticketStatuses[s]
	return ok
}

func (s TicketStatus) String() string {
	return string(s)
}

// ParseTicketStatus converts a raw string into a TicketStatus
func ParseTicketStatus(raw string) (TicketStatus, error) {
	s := TicketStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown ticket status %q", raw)
	}
	return s, nil
}

func (s TicketStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *TicketStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TicketStatusNew
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = TicketStatus(v)
	case []byte:
		*s = TicketStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into TicketStatus", value)
	}
	return nil
}
