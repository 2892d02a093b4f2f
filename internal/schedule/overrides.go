package schedule

import (
	"time"

	"gitlab.com/touchbase/touchbase-service/internal/model"
)

// ApplyOverrides layers the pin and birthday rules on top of a cadence-derived
// status, in strict precedence order:
//
//  1. A pinned contact is always coming_up, whatever the cadence math said.
//     The day counts are left as Classify produced them; they are not
//     recomputed for the pinned state.
//  2. Otherwise, an on_track contact whose birthday falls within the next
//     seven days is upgraded to coming_up. The upgrade never touches a
//     contact that is already overdue or coming_up.
//  3. Otherwise the status passes through unchanged.
//
// The transform only ever upgrades towards coming_up and applying it twice is
// the same as applying it once.
func ApplyOverrides(status DueStatus, contact model.Contact, today time.Time) DueStatus {
	if contact.IsPinned {
		status.Kind = ComingUp
		return status
	}
	if contact.Birthday != nil && status.Kind == OnTrack {
		occ, err := NextOccurrence(int(contact.Birthday.Month()), contact.Birthday.Day(), today)
		if err == nil && occ.DaysUntil <= comingUpWindowDays {
			status.Kind = ComingUp
		}
	}
	return status
}
