package domain

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"storeAdmin/internal/shared/httputil"
	"storeAdmin/internal/shared/normalization"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"

	DefaultTheme = "premium"
)

// Themes are the visual styles a coupon card can use.
var Themes = []string{"premium", "gold", "black", "purple"}

// Coupon is an offer code managed from the offers view.
type Coupon struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description,omitempty"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	MaxUses       int       `json:"max_uses"`
	UsesCount     int       `json:"uses_count"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
	Theme         string    `json:"theme"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Expired reports whether the coupon is past its validity window at now.
func (c Coupon) Expired(now time.Time) bool {
	return !c.ValidUntil.IsZero() && now.After(c.ValidUntil)
}

// RemainingUses is how many redemptions are left, never negative.
func (c Coupon) RemainingUses() int {
	return max(c.MaxUses-c.UsesCount, 0)
}

// NormalizeCoupon attempts to construct a Coupon from an arbitrary map payload.
func NormalizeCoupon(raw map[string]any) (Coupon, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Coupon{}, false
	}
	coupon := Coupon{
		ID:            id,
		Code:          normalization.AsString(raw["code"]),
		Description:   normalization.AsString(raw["description"]),
		DiscountType:  normalization.AsString(raw["discount_type"]),
		DiscountValue: normalization.AsFloat64(raw["discount_value"]),
		MaxUses:       normalization.AsInt(raw["max_uses"]),
		UsesCount:     normalization.AsInt(normalization.FirstString(raw, "uses_count", "used_count")),
		ValidFrom:     normalization.AsTime(raw["valid_from"]),
		ValidUntil:    normalization.AsTime(raw["valid_until"]),
		Theme:         normalization.AsString(raw["theme"]),
		IsActive:      true,
		CreatedAt:     normalization.AsTime(raw["created_at"]),
	}
	if active, ok := raw["is_active"]; ok {
		coupon.IsActive = normalization.AsBool(active)
	}
	if coupon.DiscountType == "" {
		coupon.DiscountType = DiscountPercentage
	}
	if coupon.Theme == "" {
		coupon.Theme = DefaultTheme
	}
	return coupon, true
}

// BuildCouponList projects {"coupons": [...]} into coupons, dropping entries without an id.
func BuildCouponList(payload any) []Coupon {
	rawItems := normalization.ListFromPayload(payload, "coupons")
	coupons := make([]Coupon, 0, len(rawItems))
	for _, item := range rawItems {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		coupon, ok := NormalizeCoupon(rawMap)
		if !ok {
			slog.Warn("coupon dropped: missing id", slog.String("code", normalization.AsString(rawMap["code"])))
			continue
		}
		coupons = append(coupons, coupon)
	}
	return coupons
}

// BuildCouponDetail extracts the coupon returned by add-coupon ({"coupon": {...}}).
func BuildCouponDetail(payload any) (*Coupon, bool) {
	container := normalization.MapFromPayload(payload)
	if nested, ok := container["coupon"].(map[string]any); ok {
		container = nested
	}
	if len(container) == 0 {
		return nil, false
	}
	coupon, ok := NormalizeCoupon(container)
	if !ok {
		return nil, false
	}
	return &coupon, true
}

// CouponForm is the create-coupon form.
type CouponForm struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	MaxUses       int     `json:"max_uses"`
	ValidFrom     string  `json:"valid_from"`
	ValidUntil    string  `json:"valid_until"`
	Theme         string  `json:"theme"`
}

// CouponRequest is the validated payload sent to add-coupon.
type CouponRequest struct {
	Code          string    `json:"code"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	MaxUses       int       `json:"max_uses"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
	Theme         string    `json:"theme"`
}

// Validate checks the form and returns the request to submit, or a ValidationError with one
// message per failing field.
func (f CouponForm) Validate() (CouponRequest, error) {
	errs := httputil.NewValidationError()

	code := strings.TrimSpace(f.Code)
	switch {
	case code == "":
		errs.Add("code", "Coupon code is required")
	case len(code) < 3:
		errs.Add("code", "Coupon code must be at least 3 characters")
	}

	if f.DiscountValue <= 0 {
		errs.Add("discount_value", "Discount value must be greater than 0")
	}
	if f.MaxUses <= 0 {
		errs.Add("max_uses", "Max uses must be greater than 0")
	}

	discountType := strings.ToLower(strings.TrimSpace(f.DiscountType))
	if discountType == "" {
		discountType = DiscountPercentage
	}
	if discountType != DiscountPercentage && discountType != DiscountFixed {
		errs.Add("discount_type", "Discount type must be percentage or fixed")
	}
	if discountType == DiscountPercentage && f.DiscountValue > 100 {
		errs.Add("discount_value", "Percentage discount cannot exceed 100")
	}

	theme := strings.ToLower(strings.TrimSpace(f.Theme))
	if theme == "" {
		theme = DefaultTheme
	}
	if !slices.Contains(Themes, theme) {
		errs.Add("theme", "Unknown theme "+f.Theme)
	}

	validFrom := normalization.AsTime(f.ValidFrom)
	validUntil := normalization.AsTime(f.ValidUntil)
	if strings.TrimSpace(f.ValidFrom) == "" {
		errs.Add("valid_from", "Start date is required")
	} else if validFrom.IsZero() {
		errs.Add("valid_from", "Start date is not a valid date")
	}
	if strings.TrimSpace(f.ValidUntil) == "" {
		errs.Add("valid_until", "End date is required")
	} else if validUntil.IsZero() {
		errs.Add("valid_until", "End date is not a valid date")
	}
	if !validFrom.IsZero() && !validUntil.IsZero() && !validUntil.After(validFrom) {
		errs.Add("valid_until", "End date must be after start date")
	}

	if err := errs.OrNil(); err != nil {
		return CouponRequest{}, err
	}
	return CouponRequest{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: f.DiscountValue,
		MaxUses:       f.MaxUses,
		ValidFrom:     validFrom,
		ValidUntil:    validUntil,
		Theme:         theme,
	}, nil
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the length of generated coupon codes.
const CodeLength = 10

// GenerateCode returns a random code drawn from [A-Z0-9].
func GenerateCode() string {
	var builder strings.Builder
	builder.Grow(CodeLength)
	for range CodeLength {
		builder.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}
	return builder.String()
}

// Describe renders the discount for toasts, e.g. "20% off" or "$15 off".
func (c Coupon) Describe(currency string) string {
	if c.DiscountType == DiscountFixed {
		return fmt.Sprintf("%s%g off", currency, c.DiscountValue)
	}
	return fmt.Sprintf("%g%% off", c.DiscountValue)
}
