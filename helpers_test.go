package vcdiff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertErrCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var e *Error
	require.True(t, errors.As(err, &e), "expected *vcdiff.Error, got %v", err)
	assert.Equal(t, code, e.Code, "unexpected error code in %v", err)
}
