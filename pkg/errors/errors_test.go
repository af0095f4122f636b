package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnauthorizedCarriesRedirect(t *testing.T) {
	err := Unauthorized("Please sign in to request a service", nil)

	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Equal(t, "/auth", err.Details["redirect_to"])
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", NotFound("Service request", nil))

	assert.True(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(wrapped, CodeConflict))
	assert.False(t, Is(fmt.Errorf("plain"), CodeNotFound))
}

func TestWithDetailDoesNotMutateReceiver(t *testing.T) {
	base := Conflict("already active")
	withRedirect := base.WithDetail("redirect_to", "/dashboard")

	assert.Nil(t, base.Details)
	assert.Equal(t, "/dashboard", withRedirect.Details["redirect_to"])
}
