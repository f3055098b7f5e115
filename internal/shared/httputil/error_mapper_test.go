package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

func TestErrorMapperMap(t *testing.T) {
	t.Parallel()

	mapper := NewErrorMapper().
		WithMapping(errNotFound, http.StatusNotFound, "").
		WithDefault(http.StatusBadGateway, "backend unavailable")

	validation := NewValidationError()
	validation.Add("code", "Coupon code is required")
	validation.Add("code", "ignored second message")

	cases := map[string]struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		"nil":        {err: nil, wantStatus: http.StatusOK},
		"wrapped":    {err: fmt.Errorf("fetch product: %w", errNotFound), wantStatus: http.StatusNotFound, wantMsg: "not found"},
		"deadline":   {err: fmt.Errorf("call: %w", context.DeadlineExceeded), wantStatus: http.StatusGatewayTimeout, wantMsg: "request timeout"},
		"default":    {err: errors.New("boom"), wantStatus: http.StatusBadGateway, wantMsg: "backend unavailable"},
		"validation": {err: fmt.Errorf("add coupon: %w", validation), wantStatus: http.StatusUnprocessableEntity},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			info := mapper.Map(tc.err)
			assert.Equal(t, tc.wantStatus, info.Status)
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, info.Message)
			}
		})
	}

	info := mapper.Map(validation)
	assert.Equal(t, map[string]string{"code": "Coupon code is required"}, info.Fields)
}

func TestValidationErrorOrNil(t *testing.T) {
	t.Parallel()

	empty := NewValidationError()
	assert.NoError(t, empty.OrNil())

	empty.Add("max_uses", "Max uses must be greater than 0")
	err := empty.OrNil()
	assert.EqualError(t, err, "validation failed: max_uses: Max uses must be greater than 0")
}
