package util

import (
	"testing"

	"fridgepick.pl/api/internal/exceptions"
	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type measured struct {
	Unit *string `json:"unit" validate:"required,unit"`
}

func TestDecodeInputUnits(t *testing.T) {
	for _, unit := range []string{"g", "kg", "ml", "l", "szt"} {
		input, err := DecodeInput[measured](events.APIGatewayV2HTTPRequest{Body: `{"unit": "` + unit + `"}`})
		require.NoError(t, err, unit)
		assert.Equal(t, unit, *input.Unit)
	}

	_, err := DecodeInput[measured](events.APIGatewayV2HTTPRequest{Body: `{"unit": "garść"}`})
	var invalid *exceptions.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "invalid input: Unit must be one of g, kg, ml, l, szt", invalid.Message)

	_, err = DecodeInput[measured](events.APIGatewayV2HTTPRequest{Body: `{}`})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "invalid input: Unit failed required", invalid.Message)
}
