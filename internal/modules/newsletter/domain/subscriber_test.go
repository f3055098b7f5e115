package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeAdmin/internal/shared/listengine"
)

func sampleSubscribers() []Subscriber {
	return BuildSubscriberList(map[string]any{"newsletters": []any{
		map[string]any{"id": float64(1), "email": "john.doe@example.com", "name": "John Doe", "status": "subscribed", "subscribed_date": "2024-01-15"},
		map[string]any{"id": float64(2), "email": "sarah.smith@example.com", "name": "Sarah Smith", "status": "Subscribed", "subscribed_date": "2024-01-14"},
		map[string]any{"id": float64(3), "email": "mike.johnson@example.com", "name": "Mike, Johnson", "status": "Unsubscribed", "subscribed_date": "2024-01-13"},
		map[string]any{"id": float64(5), "email": "alex.brown@example.com", "name": "Alex Brown", "status": "Pending", "subscribed_date": "2024-01-11"},
	}})
}

func TestBuildSubscriberListNormalizesStatus(t *testing.T) {
	t.Parallel()

	subscribers := sampleSubscribers()
	require.Len(t, subscribers, 4)
	assert.Equal(t, StatusSubscribed, subscribers[0].Status)
	assert.Equal(t, "2024-01-15", subscribers[0].SubscribedDate.Format("2006-01-02"))
}

func TestStatusFacetAndSelectAllFiltered(t *testing.T) {
	t.Parallel()

	engine := listengine.New(Schema(), 10)
	engine.Load(sampleSubscribers())
	engine.SetFilter("status", StatusSubscribed)

	view := engine.View()
	assert.Equal(t, 2, view.TotalItems)

	engine.ToggleSelectAllVisible()
	assert.Equal(t, []string{"1", "2"}, engine.Selected())

	engine.SetFilter("status", "All")
	assert.Equal(t, 4, engine.View().TotalItems)
}

func TestExportRowsPrefersSelection(t *testing.T) {
	t.Parallel()

	subscribers := sampleSubscribers()
	rows, err := ExportRows(subscribers[:1], subscribers)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = ExportRows(nil, subscribers[1:])
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = ExportRows(nil, nil)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSubscribers()[2:3]))
	assert.Equal(t, "Email,Name,Status,Date\nmike.johnson@example.com,\"Mike, Johnson\",Unsubscribed,2024-01-13\n", buf.String())
}
