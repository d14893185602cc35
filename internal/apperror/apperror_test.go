package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = NotFound("Card not found")

func TestIs_MatchesWrappedSentinel(t *testing.T) {
	cause := errors.New("record not found")
	err := fmt.Errorf("load card: %w", errSample.Wrap(cause))

	assert.ErrorIs(t, err, errSample)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, NotFound("Column not found"))
}

func TestStatusAndMessage(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusOf(Conflict("dup")))
	assert.Equal(t, "dup", MessageOf(Conflict("dup")))

	plain := errors.New("pq: connection refused")
	assert.Equal(t, http.StatusInternalServerError, StatusOf(plain))
	assert.Equal(t, "Internal server error", MessageOf(plain))
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "boom", Internal("boom").Error())
	assert.Equal(t, "boom: cause", Internal("boom").Wrap(errors.New("cause")).Error())
}
