package service

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/touchbase/touchbase-service/internal/auth"
	"gitlab.com/touchbase/touchbase-service/internal/model"
	"gitlab.com/touchbase/touchbase-service/internal/schedule"
)

// touchpointRequest is the JSON body for logging and updating touchpoints.
// The contact date is a plain calendar date; it may be backdated but never
// future-dated.
type touchpointRequest struct {
	ContactDate *string `json:"contact_date"`
	Channel     *string `json:"channel"`
	Note        *string `json:"note"`
}

// parseContactDate validates and parses the contact_date of a request. It
// rejects dates after today; logging an interaction that has not happened yet
// would poison the due-status math.
func parseContactDate(c *gin.Context, raw string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid contact_date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	if schedule.DaysBetween(time.Now(), date) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "contact_date must not be in the future"})
		return time.Time{}, false
	}
	return date, true
}

// ownedContactId resolves the :id URL parameter to a contact of the calling
// user. Contacts of other owners report not-found.
func ownedContactId(c *gin.Context, userId string) (int64, bool) {
	id := c.Param("id")
	idAsInt, errConv := strconv.ParseInt(id, 10, 64)
	if errConv != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return 0, false
	}
	var contacts []model.Contact
	if err := selectContactWhereId.Select(&contacts, id, userId); err != nil {
		log.Panicln(err)
	}
	if len(contacts) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return 0, false
	}
	return idAsInt, true
}

// createTouchpoint logs an interaction with the contact given in the request
// URL. It responds with the full touchpoint data including the newly assigned
// id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56/touchpoints --request "POST" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"contact_date": "2026-08-20", "channel": "call", "note": "caught up about the move"}'
func createTouchpoint(c *gin.Context) {
	userId, ok := auth.UserId(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	contactId, ok := ownedContactId(c, userId)
	if !ok {
		return
	}
	var req touchpointRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if req.ContactDate == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "contact_date is mandatory"})
		return
	}
	date, ok := parseContactDate(c, *req.ContactDate)
	if !ok {
		return
	}
	if req.Channel == nil || !model.ValidChannel(*req.Channel) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid channel"})
		return
	}

	newTouchpoint := model.Touchpoint{
		ContactId:   contactId,
		ContactDate: date,
		Channel:     *req.Channel,
		Note:        req.Note,
		CreatedAt:   time.Now(),
	}
	result, err := insertTouchpoint.Exec(&newTouchpoint)
	if err != nil {
		log.Panicln(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		log.Panicln(err)
	}
	newTouchpoint.Id = id
	c.IndentedJSON(http.StatusCreated, newTouchpoint)
}

// findTouchpoints responds with all touchpoints of one contact, newest first.
//
// Example REST API call:
//
//	> curl --header "Authorization: Bearer $TOKEN" http://localhost:8080/contacts/56/touchpoints
func findTouchpoints(c *gin.Context) {
	userId, ok := auth.UserId(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	contactId, ok := ownedContactId(c, userId)
	if !ok {
		return
	}
	var touchpoints []model.Touchpoint
	if err := selectTouchpointsWhereContact.Select(&touchpoints, contactId); err != nil {
		log.Panicln(err)
	}
	if touchpoints == nil {
		touchpoints = []model.Touchpoint{}
	}
	c.IndentedJSON(http.StatusOK, touchpoints)
}

// updateTouchpointByID updates the touchpoint whose ID value matches the id
// parameter of the request URL, updates the values specified in the JSON (and
// only those), and finally responds with the new version of the touchpoint.
//
// Example REST API call:
//
//	> curl http://localhost:8080/touchpoints/7 --request "PUT" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"channel": "video"}'
func updateTouchpointByID(c *gin.Context) {
	userId, ok := auth.UserId(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	id := c.Param("id")
	_, errConv := strconv.Atoi(id)
	if errConv != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return
	}

	var submitted touchpointRequest
	if errBind := c.BindJSON(&submitted); errBind != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}

	var args []interface{}
	sql := "UPDATE touchpoints tp JOIN contacts c ON c.id = tp.contact_id SET "
	if submitted.ContactDate != nil {
		date, ok := parseContactDate(c, *submitted.ContactDate)
		if !ok {
			return
		}
		args = append(args, date)
		sql += "tp.contact_date=?, "
	}
	if submitted.Channel != nil {
		if !model.ValidChannel(*submitted.Channel) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid channel"})
			return
		}
		args = append(args, submitted.Channel)
		sql += "tp.channel=?, "
	}
	if submitted.Note != nil {
		args = append(args, submitted.Note)
		sql += "tp.note=?, "
	}

	// It only makes sense to continue if we have at least one value to update.
	if len(args) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no values to be updated"})
		return
	}

	sql = sql[:len(sql)-2]
	sql += " WHERE tp.id=? AND c.user_id=?"
	args = append(args, id, userId)
	result := db.MustExec(sql, args...)
	if _, errRows := result.RowsAffected(); errRows != nil {
		log.Panicln(errRows)
	}

	var touchpoints []model.Touchpoint
	if errSelect := selectTouchpointWhereId.Select(&touchpoints, id, userId); errSelect != nil {
		log.Panicln(errSelect)
	}
	if len(touchpoints) == 0 {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "touchpoint not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, touchpoints[0])
}

// deleteTouchpointByID deletes the touchpoint whose ID value matches the id
// parameter of the request URL from the database.
//
// Example REST API call:
//
//	> curl http://localhost:8080/touchpoints/7 --request "DELETE" --header "Authorization: Bearer $TOKEN"
func deleteTouchpointByID(c *gin.Context) {
	userId, ok := auth.UserId(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	id := c.Param("id")
	_, errConv := strconv.Atoi(id)
	if errConv != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return
	}

	result, err := deleteTouchpointWhereId.Exec(id, userId)
	if err != nil {
		log.Panicln(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Panicln(err)
	}
	if rowsAffected == 1 {
		c.IndentedJSON(http.StatusOK, gin.H{"message": "touchpoint deleted"})
	} else {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "touchpoint not found"})
	}
}
