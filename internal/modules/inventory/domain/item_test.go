package domain

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeAdmin/internal/shared/httputil"
	"storeAdmin/internal/shared/listengine"
)

func TestStockStatusThresholds(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:  StatusOutOfStock,
		-1: StatusOutOfStock,
		1:  StatusLowStock,
		10: StatusLowStock,
		11: StatusInStock,
	}
	for quantity, want := range cases {
		assert.Equal(t, want, StockStatus(quantity), "quantity %d", quantity)
	}
}

func TestFixtureAndTotals(t *testing.T) {
	t.Parallel()

	items, err := Fixture()
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, StatusLowStock, items[2].Status)
	assert.Equal(t, StatusOutOfStock, items[1].Status)

	totals := Summarize(items)
	assert.Equal(t, 48, totals.Units)
	assert.InDelta(t, 15*2499+8*1199+25*799, totals.Value, 0.001)
	assert.Equal(t, 1, totals.LowStock)
	assert.Equal(t, []string{"Electronics", "Audio", "Wearables"}, totals.Categories)
	assert.Equal(t, []string{"Audio", "Electronics", "Wearables"}, SortedCategories(items))
}

func TestCategoryFacetAndSearch(t *testing.T) {
	t.Parallel()

	items, err := Fixture()
	require.NoError(t, err)

	engine := listengine.New(Schema(), 10)
	engine.Load(items)
	engine.SetFilter("category", "electronics")
	assert.Equal(t, 2, engine.View().TotalItems)

	engine.SetSearch("ip15")
	view := engine.View()
	require.Len(t, view.Items, 1)
	assert.Equal(t, "3", view.Items[0].ID)
}

func TestItemFormNewItem(t *testing.T) {
	t.Parallel()

	form := ItemForm{Name: " USB-C Cable ", SKU: "USBC-1M", Category: "Accessories", Quantity: 5, Price: 19}
	require.NoError(t, form.Validate())

	now := time.Date(2024, time.March, 9, 17, 45, 0, 0, time.UTC)
	id := NewIDGenerator().New(now)
	parsed, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(now), parsed.Time())

	item := form.NewItem(id, now)
	assert.Equal(t, "USB-C Cable", item.Name)
	assert.Equal(t, StatusLowStock, item.Status)
	assert.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), item.LastUpdated)

	err = ItemForm{Quantity: -1}.Validate()
	var validation *httputil.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Len(t, validation.Fields, 4)
}
