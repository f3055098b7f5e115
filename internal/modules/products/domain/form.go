package domain

import (
	"slices"
	"strings"

	"storeAdmin/internal/shared/httputil"
)

// ProductForm is the create/edit form submitted by the dashboard.
type ProductForm struct {
	Name         string   `json:"product_name"`
	Description  string   `json:"product_description"`
	Price        float64  `json:"product_price"`
	Discount     float64  `json:"product_discount"`
	DiscountType string   `json:"product_discount_type"`
	Stock        int      `json:"product_stock"`
	Gender       string   `json:"gender"`
	Categories   []string `json:"product_categories"`
	Sizes        []string `json:"product_sizes"`
	Colors       []string `json:"product_colors"`

	// ExistingImages are the image URLs kept from the product being edited.
	ExistingImages []string              `json:"existing_images"`
	// NewImages are files uploaded with the form.
	NewImages      []httputil.FileUpload `json:"-"`
}

// Validate checks the form fields the backend cannot derive.
func (f ProductForm) Validate() error {
	errs := httputil.NewValidationError()
	if strings.TrimSpace(f.Name) == "" {
		errs.Add("product_name", "Product name is required")
	}
	if f.Price <= 0 {
		errs.Add("product_price", "Price must be greater than 0")
	}
	if f.Discount < 0 || f.Discount > 100 {
		errs.Add("product_discount", "Discount must be between 0 and 100")
	}
	if f.Stock < 0 {
		errs.Add("product_stock", "Stock cannot be negative")
	}
	if f.Gender != "" && !slices.Contains(Genders, f.Gender) {
		errs.Add("gender", "Gender must be Male, Female or Unisex")
	}
	for _, size := range f.Sizes {
		if !slices.Contains(Sizes, size) {
			errs.Add("product_sizes", "Unknown size "+size)
		}
	}
	if f.DiscountType != "" && !slices.Contains(DiscountTypes, f.DiscountType) {
		errs.Add("product_discount_type", "Unknown discount type "+f.DiscountType)
	}
	if len(f.ExistingImages)+len(f.NewImages) > MaxImages {
		errs.Add("product_images", "A product holds at most 6 images")
	}
	return errs.OrNil()
}

// MaxImages is the number of image slots on the product form.
const MaxImages = 6

// ProductSubmission is the form plus the derived fields sent to the backend.
type ProductSubmission struct {
	ProductForm
	OwnerID    string
	SKU        string
	SalesPrice float64
	Status     string
}

// Derive completes the form with the sales price, stock status and SKU. An empty sku asks
// generate for a fresh one; edits pass the existing SKU.
func (f ProductForm) Derive(ownerID, sku string, generate SKUGenerator) ProductSubmission {
	if sku == "" {
		if generate == nil {
			generate = RandomSKU
		}
		sku = generate()
	}
	return ProductSubmission{
		ProductForm: f,
		OwnerID:     ownerID,
		SKU:         sku,
		SalesPrice:  SalesPrice(f.Price, f.Discount),
		Status:      StockStatus(f.Stock),
	}
}

// FormFromProduct prefills the edit form from an existing product.
func FormFromProduct(p Product) ProductForm {
	return ProductForm{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Discount:       p.Discount,
		DiscountType:   p.DiscountType,
		Stock:          p.Stock,
		Gender:         p.Gender,
		Categories:     slices.Clone(p.Categories),
		Sizes:          slices.Clone(p.Sizes),
		Colors:         slices.Clone(p.Colors),
		ExistingImages: slices.Clone(p.Images),
	}
}

// Apply returns a copy of p updated with the submission, as kept locally after a successful save.
func (s ProductSubmission) Apply(p Product) Product {
	p.SKU = s.SKU
	p.Name = s.Name
	p.Description = s.Description
	p.Price = s.Price
	p.SalesPrice = s.SalesPrice
	p.Discount = s.Discount
	p.DiscountType = s.DiscountType
	p.Stock = s.Stock
	p.Status = s.Status
	p.Gender = s.Gender
	p.Categories = slices.Clone(s.Categories)
	p.Sizes = slices.Clone(s.Sizes)
	p.Colors = slices.Clone(s.Colors)
	if len(s.ExistingImages) > 0 || len(s.NewImages) == 0 {
		p.Images = slices.Clone(s.ExistingImages)
	}
	return p
}
