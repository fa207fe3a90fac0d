package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, CodeInternal, "store failure")

	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeInternal))
	assert.Equal(t, "store failure: dial tcp: connection refused", err.Error())
}

func TestWrapWithoutMessage(t *testing.T) {
	cause := errors.New("12345 is not a russian number format")
	err := Wrap(cause, CodeValidation, "")

	assert.Equal(t, "12345 is not a russian number format", err.Error())

	var de *Error
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, "12345 is not a russian number format", de.Description())
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(CodeNotFound, "missing"))

	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(New(CodeConflict, "exists")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:  http.StatusBadRequest,
		CodeValidation:  http.StatusUnprocessableEntity,
		CodeNotFound:    http.StatusNotFound,
		CodeConflict:    http.StatusConflict,
		CodeUnavailable: http.StatusServiceUnavailable,
		CodeInternal:    http.StatusInternalServerError,
		Code("unknown"): http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, ToHTTPStatus(code), "code %s", code)
	}
}
