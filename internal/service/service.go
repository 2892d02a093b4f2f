// Package service implements the REST API of the touchbase service: contact
// and touchpoint CRUD plus the due listing that tells the user who to reach
// out to. All endpoints are scoped to the authenticated owner.
package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/touchbase/touchbase-service/internal/auth"
	"gitlab.com/touchbase/touchbase-service/internal/config"
	"gitlab.com/touchbase/touchbase-service/internal/model"
	"gitlab.com/touchbase/touchbase-service/internal/schedule"
	"gitlab.com/touchbase/touchbase-service/internal/timezone"
)

// maxInt is the largest possible int value
const maxInt = int(^uint(0) >> 1)

// dateLayout is the wire format for touchpoint dates; touchpoints carry a
// calendar date, never a clock time.
const dateLayout = "2006-01-02"

// birthdayYear is the placeholder year under which birthdays are stored. It
// is a leap year so February 29 is representable; the real year is never
// known.
const birthdayYear = 2000

// db is a handle to the database.
var db *sqlx.DB

// guesser resolves contact locations to timezones for the due listing.
var guesser timezone.Guesser = timezone.TableGuesser{}

// insertContact is a prepared statement for creating a contact.
var insertContact *sqlx.NamedStmt

// selectContactWhereId is a prepared statement for selecting one contact of
// one owner.
var selectContactWhereId *sqlx.Stmt

// deleteContactWhereId is a prepared statement for deleting one contact of
// one owner.
var deleteContactWhereId *sqlx.Stmt

// insertTouchpoint is a prepared statement for logging a touchpoint.
var insertTouchpoint *sqlx.NamedStmt

// selectTouchpointsWhereContact is a prepared statement for loading the
// touchpoints of one contact, newest first.
var selectTouchpointsWhereContact *sqlx.Stmt

// selectTouchpointWhereId is a prepared statement for selecting one
// touchpoint, constrained to the owner via the contact it belongs to.
var selectTouchpointWhereId *sqlx.Stmt

// deleteTouchpointWhereId is a prepared statement for deleting one
// touchpoint, constrained to the owner via the contact it belongs to.
var deleteTouchpointWhereId *sqlx.Stmt

// selectTouchpointsWhereUser is a prepared statement for loading all
// touchpoints of all contacts of one owner in a single query.
var selectTouchpointsWhereUser *sqlx.Stmt

// allowedOrderby are the allowed values for the 'orderby' URL parameter.
var allowedOrderby = []string{"id", "name", "cadence_days", "created_at"}

// allowedAscending are the allowed values for the 'ascending' URL parameter.
var allowedAscending = []string{"true", "false"}

// allowedStatus are the allowed values for the 'status' URL parameter of the
// due listing.
var allowedStatus = []string{
	string(schedule.Overdue), string(schedule.ComingUp), string(schedule.OnTrack),
}

// CreateDatabase initializes and returns a database connection using the
// given configuration.
func CreateDatabase(cfg *config.Config) *sql.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBName)
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal(err)
	}
	return sqlDB
}

// SetupDatabaseWrapper initializes the sqlx database wrapper with the specified sql database. It
// then prepares all statements. The database argument can be a real database for production use
// or a mock database within unit tests.
func SetupDatabaseWrapper(sqlDB *sql.DB) {
	var err error
	db = sqlx.NewDb(sqlDB, "mysql")

	// Prepared statements offer a significant speed increase if executed many times.
	insertContact, err = db.PrepareNamed(`
		INSERT INTO contacts (user_id, name, relationship, city, country, location,
			birthday, cadence_days, notes, is_pinned, created_at)
		VALUES (:user_id, :name, :relationship, :city, :country, :location,
			:birthday, :cadence_days, :notes, :is_pinned, :created_at)
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectContactWhereId, err = db.Preparex(`
		SELECT * FROM contacts WHERE id = ? AND user_id = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	deleteContactWhereId, err = db.Preparex(`
		DELETE FROM contacts WHERE id = ? AND user_id = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	insertTouchpoint, err = db.PrepareNamed(`
		INSERT INTO touchpoints (contact_id, contact_date, channel, note, created_at)
		VALUES (:contact_id, :contact_date, :channel, :note, :created_at)
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectTouchpointsWhereContact, err = db.Preparex(`
		SELECT * FROM touchpoints WHERE contact_id = ? ORDER BY contact_date DESC, id DESC
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectTouchpointWhereId, err = db.Preparex(`
		SELECT tp.* FROM touchpoints tp
		JOIN contacts c ON c.id = tp.contact_id
		WHERE tp.id = ? AND c.user_id = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	deleteTouchpointWhereId, err = db.Preparex(`
		DELETE tp FROM touchpoints tp
		JOIN contacts c ON c.id = tp.contact_id
		WHERE tp.id = ? AND c.user_id = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectTouchpointsWhereUser, err = db.Preparex(`
		SELECT tp.* FROM touchpoints tp
		JOIN contacts c ON c.id = tp.contact_id
		WHERE c.user_id = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
// Everything except the health endpoint sits behind bearer-token
// authentication with the configured secret.
func SetupHttpRouter(cfg *config.Config) *gin.Engine {
	var router *gin.Engine
	if strings.EqualFold(cfg.GinLogging, "off") {
		fmt.Println("Turning off HTTP request logging.")
		router = gin.New()
		router.Use(gin.Recovery())
	} else {
		router = gin.Default()
	}
	router.GET("/health", health)

	authorized := router.Group("/", auth.Middleware(cfg.JWTSecret))
	authorized.GET("/contacts", findContacts)
	authorized.POST("/contacts", createContact)
	authorized.GET("/contacts/due", findDueContacts)
	authorized.GET("/contacts/:id", findContactByID)
	authorized.PUT("/contacts/:id", updateContactByID)
	authorized.DELETE("/contacts/:id", deleteContactByID)
	authorized.POST("/contacts/:id/touchpoints", createTouchpoint)
	authorized.GET("/contacts/:id/touchpoints", findTouchpoints)
	authorized.PUT("/touchpoints/:id", updateTouchpointByID)
	authorized.DELETE("/touchpoints/:id", deleteTouchpointByID)
	return router
}

// health responds with a static body so that deployment tooling can tell the
// service is up.
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// contactRequest is the JSON body for creating and updating contacts. All
// fields are pointers so that an update can tell "absent" from "set to zero
// value". The birthday arrives as a month/day pair; the year is never
// transmitted.
type contactRequest struct {
	Name          *string `json:"name"`
	Relationship  *string `json:"relationship"`
	City          *string `json:"city"`
	Country       *string `json:"country"`
	Location      *string `json:"location"`
	BirthdayMonth *int    `json:"birthday_month"`
	BirthdayDay   *int    `json:"birthday_day"`
	CadenceDays   *int    `json:"cadence_days"`
	Notes         *string `json:"notes"`
	IsPinned      *bool   `json:"is_pinned"`
}

// birthdayFromRequest validates the month/day pair of a request and converts
// it into the placeholder-year date stored in the database. It returns
// (nil, true) if no birthday was submitted and (nil, false) if the pair is
// incomplete or not a real date.
func birthdayFromRequest(c *gin.Context, req contactRequest) (*time.Time, bool) {
	if req.BirthdayMonth == nil && req.BirthdayDay == nil {
		return nil, true
	}
	if req.BirthdayMonth == nil || req.BirthdayDay == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"message": "birthday_month and birthday_day must be submitted together"})
		return nil, false
	}
	if _, err := schedule.NextOccurrence(*req.BirthdayMonth, *req.BirthdayDay, time.Now()); err != nil {
		if errors.Is(err, schedule.ErrInvalidDate) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid birthday"})
			return nil, false
		}
		log.Panicln(err)
	}
	birthday := time.Date(birthdayYear, time.Month(*req.BirthdayMonth), *req.BirthdayDay,
		0, 0, 0, 0, time.UTC)
	return &birthday, true
}

// normalizePlace folds the legacy location string of a request into the
// structured city/country fields. The location value is kept verbatim for
// round-tripping but everything downstream reads only city and country.
func normalizePlace(contact *model.Contact) {
	place := timezone.Normalize(contact.City, contact.Country, contact.Location)
	if place.City != "" {
		city := place.City
		contact.City = &city
	}
	if place.Country != "" {
		country := place.Country
		contact.Country = &country
	}
}

// createContact inserts the contact specified in the request's JSON into the database. It
// responds with the full contact data including the newly assigned id.
//
// Name and cadence_days are mandatory; cadence_days must be at least 1. A
// legacy "location" string is normalized into city/country on the way in.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"name": "Hans Wurst", "cadence_days": 30, "birthday_month": 3, "birthday_day": 2}'
func createContact(c *gin.Context) {
	userId, ok := auth.UserId(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	var req contactRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "name is mandatory"})
		return
	}
	if req.CadenceDays == nil || *req.CadenceDays < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "cadence_days must be at least 1"})
		return
	}
	birthday, ok := birthdayFromRequest(c, req)
	if !ok {
		return
	}

	newContact := model.Contact{
		UserId:       userId,
		Name:         strings.TrimSpace(*req.Name),
		Relationship: req.Relationship,
		City:         req.City,
		Country:      req.Country,
		Location:     req.Location,
		Birthday:     birthday,
		CadenceDays:  *req.CadenceDays,
		Notes:        req.Notes,
		CreatedAt:    time.Now(),
	}
	if req.IsPinned != nil {
		newContact.IsPinned = *req.IsPinned
	}
	normalizePlace(&newContact)

	result, err := insertContact.Exec(&newContact)
	if err != nil {
		log.Panicln(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		log.Panicln(err)
	}
	newContact.Id = id
	c.IndentedJSON(http.StatusCreated, newContact)
}

// findContacts responds with a list of the caller's contacts as JSON.
//
// The URL parameter 'limit' specifies how many contacts are returned. The URL
// parameter 'offset' specifies how many items from the sorted list of results
// are skipped in the beginning. Together, one can implement search result
// paging.
//
// The URL parameter 'orderby' specifies the contact property by which the
// results shall be sorted. Valid values are 'id', 'name', 'cadence_days', and
// 'created_at'. If this URL parameter is not specified, the contacts will be
// sorted by id.
//
// If the URL parameter 'ascending' is set to 'false' then the sort order is
// reversed, starting with the 'highest' value.
//
// REST API calls:
//
//	> curl --header "Authorization: Bearer $TOKEN" "http://localhost:8080/contacts"
//	> curl --header "Authorization: Bearer $TOKEN" "http://localhost:8080/contacts?limit=20&offset=60"
//	> curl --header "Authorization: Bearer $TOKEN" "http://localhost:8080/contacts?orderby=name&ascending=false"
func findContacts(c *gin.Context) {
	userId, ok := auth.UserId(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	limit, offset, successLimitAndOffset := parseLimitAndOffset(c)
	if !successLimitAndOffset {
		return
	}
	orderby, ascending, successOrderbyAndAscending := parseOrderbyAndAscending(c)
	if !successOrderbyAndAscending {
		return
	}
	var contacts []model.Contact
	sql := fmt.Sprintf(`
		SELECT *
		FROM contacts
		WHERE user_id = ?
		ORDER BY %s %s
		LIMIT ?
		OFFSET ?`, orderby, ascending)
	err := db.Select(&contacts, sql, userId, limit, offset)
	if err != nil {
		log.Panicln(err)
	}
	if len(contacts) == 0 {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
	} else {
		c.IndentedJSON(http.StatusOK, contacts)
	}
}

// parseLimitAndOffset inspects the URL parameters and determines values for limit and offset of
// the result set.
func parseLimitAndOffset(c *gin.Context) (limit string, offset string, success bool) {
	limit = c.Query("limit")
	offset = c.Query("offset")
	if limit != "" {
		limitAsInt, errConv := strconv.Atoi(limit)
		if errConv != nil || limitAsInt < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid limit parameter"})
			return "", "", false
		}
	} else {
		limit = strconv.Itoa(maxInt)
	}
	if offset != "" {
		offsetAsInt, errConv := strconv.Atoi(offset)
		if errConv != nil || offsetAsInt < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid offset parameter"})
			return "", "", false
		}
	} else {
		offset = "0"
	}
	return limit, offset, true
}

// parseOrderbyAndAscending inspects the URL parameters and determines values for the orderby and
// ascending values of the result set.
func parseOrderbyAndAscending(c *gin.Context) (orderby string, ascending string, success bool) {
	orderby = c.Query("orderby")
	if orderby == "" {
		orderby = "id"
	}
	if !contains(allowedOrderby, orderby) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid orderby parameter"})
		return "", "", false
	}
	ascendingAsString := c.Query("ascending")
	if ascendingAsString == "" {
		ascendingAsString = "true"
	}
	if !contains(allowedAscending, ascendingAsString) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid ascending parameter"})
		return orderby, "", false
	}
	if ascendingAsString == "true" {
		ascending = "ASC"
	} else {
		ascending = "DESC"
	}
	return orderby, ascending, true
}

// contains returns true if a string is present in a slice.
func contains(slice []string, str string) bool {
	for _, v := range slice {
		if v == str {
			return true
		}
	}
	return false
}

// findContactByID locates the contact whose ID value matches the id parameter of the request URL,
// then returns that contact as a response. Contacts of other owners answer
// with 404, never 403, so ids do not leak.
//
// Example REST API call:
//
//	> curl --header "Authorization: Bearer $TOKEN" http://localhost:8080/contacts/56
func findContactByID(c *gin.Context) {
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

	var contacts []model.Contact
	err := selectContactWhereId.Select(&contacts, id, userId)
	if err != nil {
		log.Panicln(err)
	}
	if len(contacts) == 0 {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
	} else {
		c.IndentedJSON(http.StatusOK, contacts[0])
	}
}

// updateContactByID updates the contact whose ID value matches the id parameter of the request
// URL, updates the values specified in the JSON (and only those), and finally responds with the
// new version of the contact.
//
// Clearing a birthday is not supported through this endpoint; submitting a
// new month/day pair replaces the stored one.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/contacts/56 --request "PUT" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"cadence_days": 14}'
//	> curl http://localhost:8080/contacts/56 --request "PUT" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"is_pinned": true}'
func updateContactByID(c *gin.Context) {
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

	var submitted contactRequest
	if errBind := c.BindJSON(&submitted); errBind != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if submitted.CadenceDays != nil && *submitted.CadenceDays < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "cadence_days must be at least 1"})
		return
	}
	birthday, ok := birthdayFromRequest(c, submitted)
	if !ok {
		return
	}

	// Normalize a submitted legacy location into city/country before writing.
	if submitted.Location != nil && submitted.City == nil && submitted.Country == nil {
		place := timezone.Normalize(nil, nil, submitted.Location)
		if place.City != "" {
			city := place.City
			submitted.City = &city
		}
		if place.Country != "" {
			country := place.Country
			submitted.Country = &country
		}
	}

	var args []interface{}
	sql := "UPDATE contacts SET "
	if submitted.Name != nil {
		args = append(args, submitted.Name)
		sql += "name=?, "
	}
	if submitted.Relationship != nil {
		args = append(args, submitted.Relationship)
		sql += "relationship=?, "
	}
	if submitted.City != nil {
		args = append(args, submitted.City)
		sql += "city=?, "
	}
	if submitted.Country != nil {
		args = append(args, submitted.Country)
		sql += "country=?, "
	}
	if submitted.Location != nil {
		args = append(args, submitted.Location)
		sql += "location=?, "
	}
	if birthday != nil {
		args = append(args, birthday)
		sql += "birthday=?, "
	}
	if submitted.CadenceDays != nil {
		args = append(args, submitted.CadenceDays)
		sql += "cadence_days=?, "
	}
	if submitted.Notes != nil {
		args = append(args, submitted.Notes)
		sql += "notes=?, "
	}
	if submitted.IsPinned != nil {
		args = append(args, submitted.IsPinned)
		sql += "is_pinned=?, "
	}

	// It only makes sense to continue if we have at least one value to update.
	if len(args) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no values to be updated"})
		return
	}

	sql = sql[:len(sql)-2]
	sql += " WHERE id=? AND user_id=?"
	args = append(args, id, userId)
	result := db.MustExec(sql, args...)
	if _, errRows := result.RowsAffected(); errRows != nil {
		log.Panicln(errRows)
	}

	// In the HTTP response, return the full contact after the update. A
	// no-change update affects zero rows, so the reload also decides whether
	// the contact exists at all.
	var contacts []model.Contact
	errSelect := selectContactWhereId.Select(&contacts, id, userId)
	if errSelect != nil {
		log.Panicln(errSelect)
	}
	if len(contacts) == 0 {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, contacts[0])
}

// deleteContactByID deletes the contact whose ID value matches the id parameter of the request
// URL from the database. The contact's touchpoints go with it.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "DELETE" --header "Authorization: Bearer $TOKEN"
func deleteContactByID(c *gin.Context) {
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

	result, err := deleteContactWhereId.Exec(id, userId)
	if err != nil {
		log.Panicln(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Panicln(err)
	}
	if rowsAffected == 1 {
		c.IndentedJSON(http.StatusOK, gin.H{"message": "contact deleted"})
	} else {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
	}
}
