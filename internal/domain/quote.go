package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of a quote
type Status string

const (
	StatusDraft        Status = "utkast"
	StatusProposalSent Status = "förslag-skickat"
	StatusApproved     Status = "godkänd"
	StatusFulfilled    Status = "genomförd"
	StatusPaid         Status = "betald"
	StatusLost         Status = "förlorad"
	StatusArchived     Status = "arkiverad"
)

// IsValid checks if the Status is a valid enum value
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusProposalSent, StatusApproved, StatusFulfilled,
		StatusPaid, StatusLost, StatusArchived:
		return true
	}
	return false
}

// Label returns the localized display label for the status.
// Transition events freeze this label into the event log at the moment of
// the change, so the wording must stay stable.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Utkast"
	case StatusProposalSent:
		return "Förslag Skickat"
	case StatusApproved:
		return "Godkänd"
	case StatusFulfilled:
		return "Genomförd"
	case StatusPaid:
		return "Betald"
	case StatusLost:
		return "Förlorad Affär"
	case StatusArchived:
		return "Arkiverad"
	}
	return string(s)
}

// Color returns the visual accent class the dashboard renders for the status
func (s Status) Color() string {
	switch s {
	case StatusDraft:
		return "bg-yellow-500"
	case StatusProposalSent:
		return "bg-blue-500"
	case StatusApproved:
		return "bg-green-500"
	case StatusFulfilled:
		return "bg-blue-700"
	case StatusPaid:
		return "bg-purple-500"
	case StatusLost:
		return "bg-red-500"
	case StatusArchived:
		return "bg-gray-500"
	}
	return "bg-gray-500"
}

// ActiveStatuses is the set of statuses considered in-flight business
var ActiveStatuses = []Status{StatusDraft, StatusProposalSent, StatusApproved, StatusFulfilled}

// ArchiveStatuses is the set of retired statuses shown under the archive filter
var ArchiveStatuses = []Status{StatusPaid, StatusLost, StatusArchived}

// AllStatuses returns every status in lifecycle order
func AllStatuses() []Status {
	return []Status{
		StatusDraft, StatusProposalSent, StatusApproved, StatusFulfilled,
		StatusPaid, StatusLost, StatusArchived,
	}
}

// IsActive reports whether the status belongs to the active set
func (s Status) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// IsArchived reports whether the status belongs to the archive set. An
// unrecognized status is neither active nor archived; the store is
// schemaless and membership must be explicit, not the complement.
func (s Status) IsArchived() bool {
	for _, a := range ArchiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// CustomerType represents the classification of a customer
type CustomerType string

const (
	CustomerTypePrivate CustomerType = "privat"
	CustomerTypeCompany CustomerType = "foretag"
)

// Event is one entry in a quote's append-only audit trail
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
}

// CustomCost is a user-added cost line not covered by the fixed cost fields
type CustomCost struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
}

// CustomDiet is a user-added dietary requirement line
type CustomDiet struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type"`
	Count Amount `json:"count"`
}

// Quote represents one catering offer/job tracked through the status
// lifecycle. Field names follow the external store's wire contract.
type Quote struct {
	ID     string `json:"id,omitempty"`
	Status Status `json:"status" validate:"omitempty,oneof=utkast förslag-skickat godkänd genomförd betald förlorad arkiverad"`

	Customer         string       `json:"customer"`
	CustomerType     CustomerType `json:"customerType,omitempty" validate:"omitempty,oneof=privat foretag"`
	ContactPerson    string       `json:"contactPerson,omitempty"`
	CustomerIDNumber string       `json:"customerIdNumber,omitempty"`
	ContactEmail     string       `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone     string       `json:"contactPhone,omitempty"`

	EventDate      string `json:"eventDate,omitempty"`
	EventStartTime string `json:"eventStartTime,omitempty"`
	EventEndTime   string `json:"eventEndTime,omitempty"`

	// Numeric fields use the loose Amount/Count decoding: the store keeps
	// whatever the form last wrote, including cleared inputs as ""
	GuestCount       Count  `json:"guestCount" validate:"gte=0"`
	PricePerGuest    Amount `json:"pricePerGuest" validate:"gte=0"`
	NumChefs         Count  `json:"numChefs,omitempty" validate:"gte=0"`
	ChefCost         Amount `json:"chefCost" validate:"gte=0"`
	NumServingStaff  Count  `json:"numServingStaff,omitempty" validate:"gte=0"`
	ServingStaffCost Amount `json:"servingStaffCost" validate:"gte=0"`
	DiscountAmount   Amount `json:"discountAmount" validate:"gte=0"`

	CustomCosts []CustomCost `json:"customCosts"`

	HasVegetarian  bool  `json:"hasVegetarian,omitempty"`
	NumVegetarian  Count `json:"numVegetarian,omitempty" validate:"gte=0"`
	HasVegan       bool  `json:"hasVegan,omitempty"`
	NumVegan       Count `json:"numVegan,omitempty" validate:"gte=0"`
	HasGlutenFree  bool  `json:"hasGlutenFree,omitempty"`
	NumGlutenFree  Count `json:"numGlutenFree,omitempty" validate:"gte=0"`
	HasLactoseFree bool  `json:"hasLactoseFree,omitempty"`
	NumLactoseFree Count `json:"numLactoseFree,omitempty" validate:"gte=0"`
	HasNutAllergy  bool  `json:"hasNutAllergy,omitempty"`
	NumNutAllergy  Count `json:"numNutAllergy,omitempty" validate:"gte=0"`

	CustomDiets []CustomDiet `json:"customDiets"`

	CustomerRequests string `json:"customerRequests,omitempty"`
	MenuDescription  string `json:"menuDescription,omitempty"`
	InternalComment  string `json:"internalComment,omitempty"`

	// Events is append-only; entries are never edited or removed
	Events []Event `json:"events"`

	// Total is derived and never trusted from the store; it is recomputed
	// from the other fields on every load and edit
	Total float64 `json:"total"`
}

// tempIDPrefix marks identities not yet assigned by the external store
const tempIDPrefix = "temp_"

// NewTempID returns a client-generated temporary identity
func NewTempID(now time.Time) string {
	return fmt.Sprintf("%s%d", tempIDPrefix, now.UnixMilli())
}

// IsNew reports whether the quote has not yet been persisted by the store
func (q *Quote) IsNew() bool {
	return q.ID == "" || strings.HasPrefix(q.ID, tempIDPrefix)
}

// FirstEventTime returns the timestamp of the first logged event (creation
// time), or the zero time when no events exist. This is the sole collection
// sort key.
func (q *Quote) FirstEventTime() time.Time {
	if len(q.Events) == 0 {
		return time.Time{}
	}
	return q.Events[0].Timestamp
}

// Hydrate normalizes a raw record into a fully-populated quote so the
// pricing, lifecycle and query code can assume a complete value. Defaults
// are applied once here instead of inline at every use site.
func (q *Quote) Hydrate() {
	if q.Status == "" {
		q.Status = StatusDraft
	}
	if q.CustomerType == "" {
		q.CustomerType = CustomerTypePrivate
	}
	if q.CustomCosts == nil {
		q.CustomCosts = []CustomCost{}
	}
	if q.CustomDiets == nil {
		q.CustomDiets = []CustomDiet{}
	}
	if q.Events == nil {
		q.Events = []Event{}
	}
}

// Clone returns a deep copy of the quote. Lifecycle transitions operate on
// copies so callers never observe a mutated input.
func (q Quote) Clone() Quote {
	out := q
	out.CustomCosts = append([]CustomCost(nil), q.CustomCosts...)
	out.CustomDiets = append([]CustomDiet(nil), q.CustomDiets...)
	out.Events = append([]Event(nil), q.Events...)
	return out
}

// NewQuoteTemplate returns the in-memory template for a new case. It only
// becomes durable after the first successful save round-trip to the store.
func NewQuoteTemplate(now time.Time) Quote {
	return Quote{
		ID:           NewTempID(now),
		Status:       StatusDraft,
		Customer:     "Nytt ärende",
		CustomerType: CustomerTypePrivate,
		EventDate:    now.Format("2006-01-02"),
		GuestCount:   10,
		CustomCosts:  []CustomCost{},
		CustomDiets:  []CustomDiet{},
		Events: []Event{
			{Timestamp: now, Event: "Ärende skapat"},
		},
	}
}
