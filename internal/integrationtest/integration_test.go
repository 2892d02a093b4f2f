// Package integrationtest runs the service against a real MySQL database.
// Like the unit tests it drives the gin engine in-process, but nothing is
// mocked: the compose setup has to provide the database referenced by the
// DBUSER/DBPWD/DBHOST environment variables and an applied schema.
package integrationtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gitlab.com/touchbase/touchbase-service/internal/auth"
	"gitlab.com/touchbase/touchbase-service/internal/config"
	"gitlab.com/touchbase/touchbase-service/internal/service"
)

const testSecret = "integration-test-secret"

// setup boots the service against the real database and returns the engine
// plus a bearer token for a brand-new owner, so runs never see each other's
// data.
func setup(t *testing.T) (*gin.Engine, string) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("could not load config: %s", err)
	}
	cfg.JWTSecret = testSecret
	sqlDB := service.CreateDatabase(cfg)
	service.SetupDatabaseWrapper(sqlDB)
	gin.SetMode(gin.ReleaseMode)
	router := service.SetupHttpRouter(cfg)

	token, err := auth.Token(testSecret, uuid.NewString(), time.Hour)
	if err != nil {
		t.Fatalf("could not sign token: %s", err)
	}
	return router, token
}

// run executes one HTTP request against the engine.
func run(router *gin.Engine, token, method, url, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(method, url, strings.NewReader(body))
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)
	return recorder
}

// TestContactHappyPath tests a POST, GET, PUT, and DELETE with valid data.
func TestContactHappyPath(t *testing.T) {
	router, token := setup(t)

	// test the endpoint for creating a contact
	postRecorder := run(router, token, "POST", "/contacts", `
		{
			"name": "Erika Mustermann",
			"relationship": "friend",
			"cadence_days": 30,
			"birthday_month": 3,
			"birthday_day": 2
		}
	`)
	assert.Equal(t, http.StatusCreated, postRecorder.Code)
	var postBody map[string]interface{}
	json.Unmarshal(postRecorder.Body.Bytes(), &postBody)
	assert.Equal(t, "Erika Mustermann", postBody["name"])
	assert.Equal(t, float64(30), postBody["cadence_days"])
	idAsFloat64 := postBody["id"]
	idAsString := fmt.Sprintf("%.0f", idAsFloat64)

	// test the endpoint for finding a contact
	getRecorder := run(router, token, "GET", "/contacts/"+idAsString, "")
	assert.Equal(t, http.StatusOK, getRecorder.Code)
	var getBody map[string]interface{}
	json.Unmarshal(getRecorder.Body.Bytes(), &getBody)
	assert.Equal(t, idAsFloat64, getBody["id"])
	assert.Equal(t, "Erika Mustermann", getBody["name"])

	// test the endpoint for updating a contact
	putRecorder := run(router, token, "PUT", "/contacts/"+idAsString, `{"cadence_days": 14}`)
	assert.Equal(t, http.StatusOK, putRecorder.Code)
	var putBody map[string]interface{}
	json.Unmarshal(putRecorder.Body.Bytes(), &putBody)
	assert.Equal(t, float64(14), putBody["cadence_days"])

	// test the endpoint for deleting a contact
	deleteRecorder := run(router, token, "DELETE", "/contacts/"+idAsString, "")
	assert.Equal(t, http.StatusOK, deleteRecorder.Code)

	// the contact must be gone now
	goneRecorder := run(router, token, "GET", "/contacts/"+idAsString, "")
	assert.Equal(t, http.StatusNotFound, goneRecorder.Code)
}

// TestTouchpointAndDueListing logs touchpoints for two contacts and checks
// the resulting due listing classification end to end.
func TestTouchpointAndDueListing(t *testing.T) {
	router, token := setup(t)

	create := func(body string) string {
		recorder := run(router, token, "POST", "/contacts", body)
		assert.Equal(t, http.StatusCreated, recorder.Code)
		var created map[string]interface{}
		json.Unmarshal(recorder.Body.Bytes(), &created)
		return fmt.Sprintf("%.0f", created["id"])
	}
	soonId := create(`{"name": "Soon Sam", "cadence_days": 7}`)
	relaxedId := create(`{"name": "Relaxed Rita", "cadence_days": 90}`)

	days3Ago := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	days10Ago := time.Now().AddDate(0, 0, -10).Format("2006-01-02")
	tpRecorder := run(router, token, "POST", "/contacts/"+soonId+"/touchpoints",
		`{"contact_date": "`+days3Ago+`", "channel": "call", "note": "quick chat"}`)
	assert.Equal(t, http.StatusCreated, tpRecorder.Code)
	tpRecorder = run(router, token, "POST", "/contacts/"+relaxedId+"/touchpoints",
		`{"contact_date": "`+days10Ago+`", "channel": "email"}`)
	assert.Equal(t, http.StatusCreated, tpRecorder.Code)

	// a future-dated touchpoint must be rejected
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	badRecorder := run(router, token, "POST", "/contacts/"+soonId+"/touchpoints",
		`{"contact_date": "`+tomorrow+`", "channel": "call"}`)
	assert.Equal(t, http.StatusBadRequest, badRecorder.Code)

	dueRecorder := run(router, token, "GET", "/contacts/due", "")
	assert.Equal(t, http.StatusOK, dueRecorder.Code)
	var entries []map[string]interface{}
	json.Unmarshal(dueRecorder.Body.Bytes(), &entries)
	assert.Len(t, entries, 2)

	statusByName := map[string]map[string]interface{}{}
	for _, entry := range entries {
		name := entry["contact"].(map[string]interface{})["name"].(string)
		statusByName[name] = entry["status"].(map[string]interface{})
	}
	assert.Equal(t, "coming_up", statusByName["Soon Sam"]["kind"])
	assert.Equal(t, float64(4), statusByName["Soon Sam"]["days_until_due"])
	assert.Equal(t, "on_track", statusByName["Relaxed Rita"]["kind"])
	assert.Equal(t, float64(80), statusByName["Relaxed Rita"]["days_until_due"])
}
