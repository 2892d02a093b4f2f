package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gitlab.com/touchbase/touchbase-service/internal/auth"
	"gitlab.com/touchbase/touchbase-service/pkg/model"
)

// A demo client that drives the API end to end: it creates a handful of
// contacts with different cadences, logs touchpoints for some of them, and
// prints the resulting due listing.
//
// Usage example on the command line:
// > go run main.go -url=http://localhost:8080 -secret=changeme
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the service")
	secret := flag.String("secret", "supersecretkey", "JWT secret the service was started with")
	flag.Parse()

	token, err := auth.Token(*secret, uuid.NewString(), time.Hour)
	if err != nil {
		log.Fatal(err)
	}
	client := &apiClient{baseURL: *baseURL, token: token}

	overdue := client.createContact(`{"name": "Overdue Olga", "cadence_days": 30}`)
	soon := client.createContact(`{"name": "Soon Sam", "cadence_days": 7, "location": "Berlin, Germany"}`)
	relaxed := client.createContact(`{"name": "Relaxed Rita", "cadence_days": 90, "birthday_month": 6, "birthday_day": 15}`)
	pinned := client.createContact(`{"name": "Pinned Pete", "cadence_days": 90, "is_pinned": true}`)

	days40Ago := time.Now().AddDate(0, 0, -40).Format("2006-01-02")
	days3Ago := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	days10Ago := time.Now().AddDate(0, 0, -10).Format("2006-01-02")
	client.logTouchpoint(overdue.Id, days40Ago, "call")
	client.logTouchpoint(soon.Id, days3Ago, "text")
	client.logTouchpoint(relaxed.Id, days10Ago, "email")
	client.logTouchpoint(pinned.Id, days10Ago, "video")

	entries := client.dueListing()
	fmt.Println()
	fmt.Printf("%-15s %-10s %8s %8s %8s\n", "Name", "Status", "Since", "Due in", "Late by")
	fmt.Println("----------------------------------------------------")
	for _, entry := range entries {
		fmt.Printf("%-15s %-10s %8s %8s %8s\n",
			entry.Contact.Name,
			entry.Status.Kind,
			formatDays(entry.Status.DaysSinceLastContact),
			formatDays(entry.Status.DaysUntilDue),
			formatDays(entry.Status.DaysOverdue))
	}
}

func formatDays(days *int) string {
	if days == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *days)
}

type apiClient struct {
	baseURL string
	token   string
}

// call executes one HTTP request and returns the response body, terminating
// the program on any transport error or unexpected status.
func (c *apiClient) call(method, path string, body []byte) []byte {
	request, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		log.Fatal(err)
	}
	request.Header.Set("Authorization", "Bearer "+c.token)
	request.Header.Set("Content-Type", "application/json")
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		log.Fatal(err)
	}
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		log.Fatal(err)
	}
	if response.StatusCode >= 300 {
		log.Fatalf("%s %s answered %d: %s", method, path, response.StatusCode, responseBody)
	}
	return responseBody
}

func (c *apiClient) createContact(body string) model.Contact {
	var contact model.Contact
	if err := json.Unmarshal(c.call("POST", "/contacts", []byte(body)), &contact); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("created contact %d: %s\n", contact.Id, contact.Name)
	return contact
}

func (c *apiClient) logTouchpoint(contactId int64, date, channel string) {
	body := fmt.Sprintf(`{"contact_date": "%s", "channel": "%s"}`, date, channel)
	c.call("POST", fmt.Sprintf("/contacts/%d/touchpoints", contactId), []byte(body))
}

func (c *apiClient) dueListing() []model.DueEntry {
	var entries []model.DueEntry
	if err := json.Unmarshal(c.call("GET", "/contacts/due", nil), &entries); err != nil {
		log.Fatal(err)
	}
	return entries
}
