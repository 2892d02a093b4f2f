// Package model contains the wire-facing shapes of the touchbase REST API for
// external consumers. The service's own internal model adds database mapping
// on top; clients only need these JSON forms.
package model

import "time"

// Contact is the API representation of a person that the user keeps in touch
// with. The birthday carries the placeholder year 2000; only its month and
// day are meaningful.
type Contact struct {
	Id           int64      `json:"id"`
	UserId       string     `json:"user_id"`
	Name         string     `json:"name"`
	Relationship *string    `json:"relationship,omitempty"`
	City         *string    `json:"city,omitempty"`
	Country      *string    `json:"country,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	CadenceDays  int        `json:"cadence_days"`
	Notes        *string    `json:"notes,omitempty"`
	IsPinned     bool       `json:"is_pinned"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Touchpoint is the API representation of one logged interaction.
type Touchpoint struct {
	Id          int64     `json:"id"`
	ContactId   int64     `json:"contact_id"`
	ContactDate time.Time `json:"contact_date"`
	Channel     string    `json:"channel"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DueStatus is the computed outreach state of one contact as returned by the
// due listing. Exactly one of DaysUntilDue and DaysOverdue is present.
type DueStatus struct {
	Kind                 string `json:"kind"`
	DaysSinceLastContact *int   `json:"days_since_last_contact,omitempty"`
	DaysUntilDue         *int   `json:"days_until_due,omitempty"`
	DaysOverdue          *int   `json:"days_overdue,omitempty"`
}

// DueEntry is one row of the due listing.
type DueEntry struct {
	Contact   Contact   `json:"contact"`
	Status    DueStatus `json:"status"`
	LocalTime *string   `json:"local_time,omitempty"`
}
