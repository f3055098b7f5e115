package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"storeAdmin/internal/shared/listengine"
	"storeAdmin/internal/shared/normalization"
)

const (
	StatusSubscribed   = "Subscribed"
	StatusUnsubscribed = "Unsubscribed"
	StatusPending      = "Pending"
)

// Statuses lists the status facet values, "All" excluded.
var Statuses = []string{StatusSubscribed, StatusUnsubscribed, StatusPending}

// ExportFileName is the download name of the subscriber CSV.
const ExportFileName = "newsletter_subscribers.csv"

// ErrNothingToExport is returned when neither a selection nor a filtered list has rows.
var ErrNothingToExport = errors.New("no emails to export")

// Subscriber is a newsletter sign-up.
type Subscriber struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	SubscribedDate time.Time `json:"subscribed_date"`
}

// NormalizeSubscriber attempts to construct a Subscriber from an arbitrary map payload.
func NormalizeSubscriber(raw map[string]any) (Subscriber, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Subscriber{}, false
	}
	subscriber := Subscriber{
		ID:             id,
		Email:          normalization.AsString(raw["email"]),
		Name:           normalization.AsString(raw["name"]),
		Status:         normalizeStatus(normalization.AsString(raw["status"])),
		SubscribedDate: normalization.AsTime(normalization.FirstString(raw, "subscribed_date", "date", "created_at")),
	}
	return subscriber, true
}

func normalizeStatus(raw string) string {
	for _, status := range Statuses {
		if strings.EqualFold(status, raw) {
			return status
		}
	}
	if raw == "" {
		return StatusSubscribed
	}
	return raw
}

// BuildSubscriberList projects {"newsletters": [...]} into subscribers.
func BuildSubscriberList(payload any) []Subscriber {
	rawItems := normalization.ListFromPayload(payload, "newsletters", "emails")
	subscribers := make([]Subscriber, 0, len(rawItems))
	for _, item := range rawItems {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		subscriber, ok := NormalizeSubscriber(rawMap)
		if !ok {
			slog.Warn("subscriber dropped: missing id")
			continue
		}
		subscribers = append(subscribers, subscriber)
	}
	return subscribers
}

// ExportRows picks the rows to export: the selection when it is not empty, the filtered list
// otherwise.
func ExportRows(selected, filtered []Subscriber) ([]Subscriber, error) {
	rows := selected
	if len(rows) == 0 {
		rows = filtered
	}
	if len(rows) == 0 {
		return nil, ErrNothingToExport
	}
	return rows, nil
}

// WriteCSV writes subscribers under an Email,Name,Status,Date header.
func WriteCSV(w io.Writer, subscribers []Subscriber) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Email", "Name", "Status", "Date"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, subscriber := range subscribers {
		date := ""
		if !subscriber.SubscribedDate.IsZero() {
			date = subscriber.SubscribedDate.Format("2006-01-02")
		}
		if err := writer.Write([]string{subscriber.Email, subscriber.Name, subscriber.Status, date}); err != nil {
			return fmt.Errorf("write csv row %s: %w", subscriber.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Schema describes how the newsletter view searches and orders subscribers.
func Schema() listengine.Schema[Subscriber] {
	return listengine.Schema[Subscriber]{
		ID: func(s Subscriber) string { return s.ID },
		Fields: map[string]listengine.Field[Subscriber]{
			"email":          {Text: func(s Subscriber) string { return s.Email }},
			"name":           {Text: func(s Subscriber) string { return s.Name }},
			"status":         {Text: func(s Subscriber) string { return s.Status }},
			"subscribedDate": {Time: func(s Subscriber) time.Time { return s.SubscribedDate }},
		},
		Searchable: []string{"email", "name"},
		Facets:     []string{"status"},
		SortOptions: []listengine.SortOption{
			{Label: "Newest", Key: "subscribedDate", Direction: listengine.Descending},
			{Label: "Oldest", Key: "subscribedDate", Direction: listengine.Ascending},
			{Label: "Name (A-Z)", Key: "name", Direction: listengine.Ascending},
		},
	}
}
