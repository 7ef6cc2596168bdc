package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the actions worth keeping a trail of.
type EventType string

const (
	EventFirmDiscovered  EventType = "firm.discovered"
	EventFirmScored      EventType = "firm.scored"
	EventContactEnriched EventType = "contact.enriched"
)

// Event is one append-only audit record. CRD is the registry identifier of
// the firm the event concerns; zero when unknown.
type Event struct {
	ID        uuid.UUID
	CRD       int
	Action    string
	Detail    map[string]string
	Timestamp time.Time
}
