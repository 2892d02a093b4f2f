package service

import (
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/touchbase/touchbase-service/internal/auth"
	"gitlab.com/touchbase/touchbase-service/internal/model"
	"gitlab.com/touchbase/touchbase-service/internal/schedule"
	"gitlab.com/touchbase/touchbase-service/internal/timezone"
)

// dueEntry is one row of the due listing: the contact, its computed status,
// and a best-effort local time at the contact's place.
type dueEntry struct {
	Contact   model.Contact      `json:"contact"`
	Status    schedule.DueStatus `json:"status"`
	LocalTime *string            `json:"local_time,omitempty"`
}

// kindRank orders the three status classes for the listing: the most urgent
// first.
var kindRank = map[schedule.Kind]int{
	schedule.Overdue:  0,
	schedule.ComingUp: 1,
	schedule.OnTrack:  2,
}

// findDueContacts responds with the caller's contacts classified by due
// status, most urgent first. "today" is captured once for the whole batch so
// that every contact in one listing is judged against the same day, even when
// the request straddles midnight.
//
// The URL parameter 'status' restricts the listing to one class; valid values
// are 'overdue', 'coming_up', and 'on_track'.
//
// REST API calls:
//
//	> curl --header "Authorization: Bearer $TOKEN" "http://localhost:8080/contacts/due"
//	> curl --header "Authorization: Bearer $TOKEN" "http://localhost:8080/contacts/due?status=overdue"
func findDueContacts(c *gin.Context) {
	userId, ok := auth.UserId(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	statusFilter := c.Query("status")
	if statusFilter != "" && !contains(allowedStatus, statusFilter) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid status parameter"})
		return
	}

	var contacts []model.Contact
	if err := db.Select(&contacts, "SELECT * FROM contacts WHERE user_id = ?", userId); err != nil {
		log.Panicln(err)
	}
	var touchpoints []model.Touchpoint
	if err := selectTouchpointsWhereUser.Select(&touchpoints, userId); err != nil {
		log.Panicln(err)
	}
	grouped := schedule.GroupByContact(touchpoints)

	// One instant for the whole batch.
	today := time.Now()

	entries := []dueEntry{}
	for _, contact := range contacts {
		var last *model.Touchpoint
		if tp, ok := schedule.LastTouchpoint(grouped[contact.Id]); ok {
			last = &tp
		}
		status := schedule.Classify(contact, last, today)
		status = schedule.ApplyOverrides(status, contact, today)
		if statusFilter != "" && string(status.Kind) != statusFilter {
			continue
		}
		entry := dueEntry{Contact: contact, Status: status}
		place := timezone.Normalize(contact.City, contact.Country, contact.Location)
		if localTime, ok := timezone.LocalTime(guesser, place, today); ok {
			entry.LocalTime = &localTime
		}
		entries = append(entries, entry)
	}

	// Urgency order: overdue before coming up before on track; within one
	// class the longest-neglected contact first, ids breaking exact ties.
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := kindRank[entries[i].Status.Kind], kindRank[entries[j].Status.Kind]
		if ri != rj {
			return ri < rj
		}
		di, dj := *entries[i].Status.DaysSinceLastContact, *entries[j].Status.DaysSinceLastContact
		if di != dj {
			return di > dj
		}
		return entries[i].Contact.Id < entries[j].Contact.Id
	})

	c.IndentedJSON(http.StatusOK, entries)
}
