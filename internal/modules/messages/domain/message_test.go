package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageList(t *testing.T) {
	t.Parallel()

	messages := BuildMessageList(map[string]any{"data": []any{
		map[string]any{"id": float64(1), "name": "Sarah Johnson", "email": "sarah.j@example.com", "subject": "Newsletter Subscription Inquiry", "message": "Hello!", "read": false, "created_at": "2024-01-15T14:30:00"},
		map[string]any{"id": float64(2), "name": "Michael Chen", "read": true, "created_at": "2024-01-14T09:15:00"},
		map[string]any{"name": "nobody"},
	}})
	require.Len(t, messages, 2)
	assert.Equal(t, "1", messages[0].ID)
	assert.Equal(t, "Hello!", messages[0].Body)
	assert.Equal(t, 1, UnreadCount(messages))
	assert.Equal(t, "SJ", messages[0].Initials())
	assert.True(t, MarkRead(messages[0]).Read)
	assert.False(t, messages[0].Read)
}

func TestRelativeDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 15, 18, 0, 0, 0, time.UTC)
	cases := []struct {
		created time.Time
		want    string
	}{
		{created: time.Date(2024, time.January, 15, 14, 30, 0, 0, time.UTC), want: "Today 02:30 PM"},
		{created: time.Date(2024, time.January, 14, 9, 15, 0, 0, time.UTC), want: "Yesterday"},
		{created: time.Date(2024, time.January, 11, 8, 30, 0, 0, time.UTC), want: "Jan 11"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Message{CreatedAt: tc.created}.RelativeDate(now))
	}
	assert.Empty(t, Message{}.RelativeDate(now))
}
