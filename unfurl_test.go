package unfurl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/unfurl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := unfurl.Errorf(unfurl.EINVALID, "url %q has no host", "https://")

	assert.Equal(t, unfurl.EINVALID, unfurl.ErrorCode(err))
	assert.Equal(t, "url \"https://\" has no host", unfurl.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, unfurl.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, unfurl.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("preview: %w", unfurl.Errorf(unfurl.ECANCELED, "superseded"))

	assert.Equal(t, unfurl.ECANCELED, unfurl.ErrorCode(err))
	assert.Equal(t, "superseded", unfurl.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection refused")

	assert.Equal(t, unfurl.EINTERNAL, unfurl.ErrorCode(err))
	assert.Equal(t, "Internal error.", unfurl.ErrorMessage(err))
}
