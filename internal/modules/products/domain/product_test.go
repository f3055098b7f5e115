package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeAdmin/internal/shared/httputil"
	"storeAdmin/internal/shared/listengine"
)

func TestBuildProductListDropsRecordsWithoutID(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"products": []any{
			map[string]any{
				"id":                 float64(7),
				"skuid":              "SKU123456",
				"product_name":       "Blue Denim Jacket",
				"product_price":      "120",
				"product_stock":      float64(0),
				"product_categories": `["Jackets","Men"]`,
				"created_at":         "2024-02-01T10:00:00Z",
			},
			map[string]any{"product_name": "orphan"},
		},
	}

	products := BuildProductList(payload)
	require.Len(t, products, 1)
	product := products[0]
	assert.Equal(t, "7", product.ID)
	assert.Equal(t, 120.0, product.Price)
	assert.Equal(t, StatusOutOfStock, product.Status)
	assert.Equal(t, []string{"Jackets", "Men"}, product.Categories)
	assert.Equal(t, time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC), product.CreatedAt)
}

func TestSalesPriceAndStockStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 80.0, SalesPrice(100, 20))
	assert.Equal(t, 26.66, SalesPrice(33.33, 20))
	assert.Equal(t, 49.99, SalesPrice(49.99, 0))
	assert.Equal(t, StatusInStock, StockStatus(3))
	assert.Equal(t, StatusOutOfStock, StockStatus(0))
}

func TestRandomSKU(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^SKU[1-9][0-9]{5}$`)
	for range 50 {
		assert.Regexp(t, pattern, RandomSKU())
	}
}

func TestProductFormDeriveAndValidate(t *testing.T) {
	t.Parallel()

	form := ProductForm{Name: "Shirt", Price: 50, Discount: 10, Stock: 4, Sizes: []string{"M"}}
	require.NoError(t, form.Validate())

	created := form.Derive("user-1", "", func() string { return "SKU555555" })
	assert.Equal(t, "SKU555555", created.SKU)
	assert.Equal(t, 45.0, created.SalesPrice)
	assert.Equal(t, StatusInStock, created.Status)

	edited := form.Derive("user-1", "SKU111111", func() string { return "unused" })
	assert.Equal(t, "SKU111111", edited.SKU)

	invalid := ProductForm{Price: 0, Discount: 120, Sizes: []string{"XXXL"}, Gender: "Other"}
	err := invalid.Validate()
	var validation *httputil.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "product_name")
	assert.Contains(t, validation.Fields, "product_price")
	assert.Contains(t, validation.Fields, "product_discount")
	assert.Contains(t, validation.Fields, "product_sizes")
	assert.Contains(t, validation.Fields, "gender")
}

func TestSubmissionApplyKeepsIdentity(t *testing.T) {
	t.Parallel()

	original := Product{ID: "p1", SKU: "SKU100000", Name: "Old", Images: []string{"a.png"}, CreatedAt: time.Unix(10, 0)}
	form := FormFromProduct(original)
	form.Name = "New"
	form.Stock = 0

	updated := form.Derive("user-1", original.SKU, nil).Apply(original)
	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, "SKU100000", updated.SKU)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, StatusOutOfStock, updated.Status)
	assert.Equal(t, []string{"a.png"}, updated.Images)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
}

func TestSchemaSearchesCategoriesAndSortsByPrice(t *testing.T) {
	t.Parallel()

	catalog := []Product{
		{ID: "1", Name: "Hat", SKU: "SKU100001", Categories: []string{"Accessories"}, Price: 30},
		{ID: "2", Name: "Coat", SKU: "SKU100002", Categories: []string{"Outerwear"}, Price: 10},
		{ID: "3", Name: "Scarf", SKU: "SKU100003", Categories: []string{"accessories"}, Price: 20},
	}
	engine := listengine.New(Schema(), 8)
	engine.Load(catalog)
	engine.SetSearch("ACCESS")
	engine.SetSort("Price (Low to High)", "")

	view := engine.View()
	require.Len(t, view.Items, 2)
	assert.Equal(t, "3", view.Items[0].ID)
	assert.Equal(t, "1", view.Items[1].ID)
}
