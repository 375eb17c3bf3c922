package exceptions_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"fridgepick.pl/api/internal/exceptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	cases := map[int]exceptions.RequestError{
		400: exceptions.InvalidInput("bad"),
		401: exceptions.Unauthorized(),
		404: exceptions.NotFound("product", "abc"),
		409: exceptions.Conflict("product", "abc"),
		429: exceptions.TooManyRequests(time.Now()),
		500: exceptions.InternalServer("boom"),
	}
	for code, err := range cases {
		assert.Equal(t, code, err.ToServiceError().StatusCode, err.Error())
	}
}

func TestWrappedRequestError(t *testing.T) {
	wrapped := fmt.Errorf("loading product: %w", exceptions.NotFound("product", "abc"))
	var notFound *exceptions.NotFoundError
	require.True(t, errors.As(wrapped, &notFound))
	assert.Equal(t, "abc", notFound.Id)
}

func TestTooManyRequestsPayload(t *testing.T) {
	reset := time.UnixMilli(1_700_000_065_000)
	payload := exceptions.TooManyRequests(reset).Payload()
	assert.Equal(t, map[string]any{"isRateLimited": true, "resetTime": int64(1_700_000_065_000)}, payload)
}
