package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lattice/pkg/errors"
)

func TestError_MessageFormat(t *testing.T) {
	err := errors.New(errors.ErrorTypeConfig, "something is off")
	assert.Equal(t, "config: something is off", err.Error())

	wrapped := errors.Wrap(stderrors.New("root cause"), errors.ErrorTypeConnection, "connect failed")
	assert.Equal(t, "connection: connect failed: root cause", wrapped.Error())
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrorTypeInternal, "ignored"))
}

func TestWrap_PreservesOriginalStack(t *testing.T) {
	inner := errors.New(errors.ErrorTypeConnection, "inner")
	outer := errors.Wrap(inner, errors.ErrorTypeConfig, "outer")

	require.NotEmpty(t, outer.Stack)
	assert.Equal(t, inner.Stack, outer.Stack)
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("cause")
	err := errors.Wrap(cause, errors.ErrorTypeInternal, "wrapper")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, fmt.Errorf("further: %w", err), cause)
}

func TestIsType_ThroughWrapping(t *testing.T) {
	err := errors.New(errors.ErrorTypeConfig, "bad tree")
	deep := fmt.Errorf("caller context: %w", err)

	assert.True(t, errors.IsType(deep, errors.ErrorTypeConfig))
	assert.False(t, errors.IsType(deep, errors.ErrorTypeConnection))
	assert.False(t, errors.IsType(stderrors.New("plain"), errors.ErrorTypeConfig))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrorTypeValidation, "invalid").
		WithDetail("field", "port").
		WithDetail("value", -1)

	assert.Equal(t, "port", err.Details["field"])
	assert.Equal(t, -1, err.Details["value"])
}

func TestStackCapture(t *testing.T) {
	err := errors.New(errors.ErrorTypeInternal, "boom")
	require.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Stack[0].Function, "TestStackCapture")
}
