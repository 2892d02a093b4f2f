package schedule

import (
	"time"

	"gitlab.com/touchbase/touchbase-service/internal/model"
)

// Kind is one of the three mutually exclusive due-status classes.
type Kind string

const (
	Overdue  Kind = "overdue"
	ComingUp Kind = "coming_up"
	OnTrack  Kind = "on_track"
)

// comingUpWindowDays is the width of the "coming up" window: a contact due
// within this many days, and a birthday within this many days, both count as
// coming up.
const comingUpWindowDays = 7

// DueStatus is the derived outreach state of one contact. It is recomputed on
// every read and never persisted; it goes stale as soon as "today" advances.
//
// DaysUntilDue and DaysOverdue are mutually exclusive and both non-negative.
// DaysSinceLastContact counts from the last touchpoint, or from the contact's
// creation when no touchpoint exists.
type DueStatus struct {
	Kind                 Kind `json:"kind"`
	DaysSinceLastContact *int `json:"days_since_last_contact,omitempty"`
	DaysUntilDue         *int `json:"days_until_due,omitempty"`
	DaysOverdue          *int `json:"days_overdue,omitempty"`
}

// Classify computes the cadence-based due status of a contact.
//
// The anchor date is the last touchpoint's contact date, or the contact's
// creation date when the contact has never been contacted. Creation counts as
// a soft baseline: a freshly created contact is not overdue until a full
// cadence has elapsed since creation.
//
// With daysUntilNext = cadence - daysSince, the thresholds are:
//
//	daysUntilNext < 0  -> overdue, DaysOverdue = -daysUntilNext
//	daysUntilNext <= 7 -> coming_up, DaysUntilDue = daysUntilNext
//	daysUntilNext > 7  -> on_track, DaysUntilDue = daysUntilNext
//
// A contact on its exact due day has daysUntilNext == 0 and is coming_up,
// never overdue. A future-dated anchor clamps daysSince to zero instead of
// going negative, so such a contact behaves as if contacted today.
func Classify(contact model.Contact, last *model.Touchpoint, today time.Time) DueStatus {
	anchor := contact.CreatedAt
	if last != nil {
		anchor = last.ContactDate
	}
	daysSince := DaysBetween(anchor, today)
	if daysSince < 0 {
		daysSince = 0
	}
	daysUntilNext := contact.CadenceDays - daysSince

	status := DueStatus{DaysSinceLastContact: &daysSince}
	switch {
	case daysUntilNext < 0:
		overdueBy := -daysUntilNext
		status.Kind = Overdue
		status.DaysOverdue = &overdueBy
	case daysUntilNext <= comingUpWindowDays:
		status.Kind = ComingUp
		status.DaysUntilDue = &daysUntilNext
	default:
		status.Kind = OnTrack
		status.DaysUntilDue = &daysUntilNext
	}
	return status
}
