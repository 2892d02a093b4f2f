package model

import "time"

// Touchpoint channels. The channel is stored as a plain string so that the
// database and the JSON API use the same spelling.
const (
	ChannelCall     = "call"
	ChannelText     = "text"
	ChannelVideo    = "video"
	ChannelInPerson = "in_person"
	ChannelEmail    = "email"
	ChannelOther    = "other"
)

// Channels lists all valid touchpoint channels.
var Channels = []string{
	ChannelCall, ChannelText, ChannelVideo, ChannelInPerson, ChannelEmail, ChannelOther,
}

// ValidChannel returns true if the given string is a known touchpoint channel.
func ValidChannel(channel string) bool {
	for _, c := range Channels {
		if c == channel {
			return true
		}
	}
	return false
}

// Contact is the data structure for a person that we keep in touch with.
// All fields with the exception of Id, UserId, Name, CadenceDays and CreatedAt
// are optional.
//
// The birthday stores only a month and a day; the year is always the
// placeholder 2000 (a leap year, so February 29 is representable) and is never
// shown to anybody.
//
// Location is the legacy free-form "City, Country" string from old records. It
// is normalized into City and Country at the boundary and never interpreted
// anywhere else.
type Contact struct {
	Id           int64      `json:"id"                     db:"id"`
	UserId       string     `json:"user_id"                db:"user_id"`
	Name         string     `json:"name"                   db:"name"`
	Relationship *string    `json:"relationship,omitempty" db:"relationship"`
	City         *string    `json:"city,omitempty"         db:"city"`
	Country      *string    `json:"country,omitempty"      db:"country"`
	Location     *string    `json:"location,omitempty"     db:"location"`
	Birthday     *time.Time `json:"birthday,omitempty"     db:"birthday"`
	CadenceDays  int        `json:"cadence_days"           db:"cadence_days"`
	Notes        *string    `json:"notes,omitempty"        db:"notes"`
	IsPinned     bool       `json:"is_pinned"              db:"is_pinned"`
	CreatedAt    time.Time  `json:"created_at"             db:"created_at"`
}

// Touchpoint is a recorded interaction with a contact on a specific date.
// ContactDate may be backdated but never lies in the future.
type Touchpoint struct {
	Id          int64     `json:"id"             db:"id"`
	ContactId   int64     `json:"contact_id"     db:"contact_id"`
	ContactDate time.Time `json:"contact_date"   db:"contact_date"`
	Channel     string    `json:"channel"        db:"channel"`
	Note        *string   `json:"note,omitempty" db:"note"`
	CreatedAt   time.Time `json:"created_at"     db:"created_at"`
}
