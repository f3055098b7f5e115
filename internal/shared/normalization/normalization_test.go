package normalization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEntity(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Product":         EntityProducts,
		"contact_message": EntityMessages,
		"offers":          EntityCoupons,
		" newsletter ":    EntitySubscribers,
		"widgets":         "widgets",
		"default":         "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeEntity(raw), raw)
	}
	assert.True(t, IsValidEntity("inventory_item"))
	assert.False(t, IsValidEntity("widgets"))
}

func TestConversions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", AsString(float64(42)))
	assert.Equal(t, "12.5", AsString(12.5))
	assert.Equal(t, 7, AsInt("7"))
	assert.Equal(t, 19.99, AsFloat64(" 19.99 "))
	assert.True(t, AsBool("true"))
	assert.True(t, AsBool(float64(1)))
	assert.False(t, AsBool("nope"))

	assert.Equal(t, []string{"Shirts", "Men"}, AsStringSlice(`["Shirts"," Men ",""]`))
	assert.Equal(t, []string{"S", "M"}, AsStringSlice("S, M"))
	assert.Equal(t, []string{"red"}, AsStringSlice([]any{"red", nil}))

	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), AsTime("2024-01-15"))
	assert.True(t, AsTime("not a date").IsZero())
}

func TestListFromPayload(t *testing.T) {
	t.Parallel()

	direct := []any{map[string]any{"id": "1"}}
	assert.Len(t, ListFromPayload(direct), 1)
	assert.Len(t, ListFromPayload(map[string]any{"data": direct}), 1)
	assert.Len(t, ListFromPayload(map[string]any{"coupons": direct}, "coupons"), 1)
	assert.Len(t, ListFromPayload(map[string]any{"data": map[string]any{"messages": direct}}, "messages"), 1)
	assert.Nil(t, ListFromPayload("nope"))
}
