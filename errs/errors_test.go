package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := New(KindConfiguration, "host is required")
	assert.Equal(t, "[configuration] host is required", err.Error())

	cause := errors.New("dial tcp: connection refused")
	wrapped := Wrap(KindConnection, "database unreachable", cause)
	assert.Equal(t, "[connection] database unreachable: dial tcp: connection refused", wrapped.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindQuery, "statement failed", cause)

	require.ErrorIs(t, err, cause)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindQuery, e.Kind)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"configuration", New(KindConfiguration, "x"), IsConfiguration, true},
		{"connection", New(KindConnection, "x"), IsConnection, true},
		{"query", New(KindQuery, "x"), IsQuery, true},
		{"not found", New(KindNotFound, "x"), IsNotFound, true},
		{"timeout", New(KindTimeout, "x"), IsTimeout, true},
		{"wrong kind", New(KindQuery, "x"), IsConnection, false},
		{"plain error", errors.New("x"), IsQuery, false},
		{"nil", nil, IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tt.err))
		})
	}
}

func TestPredicates_WrappedChain(t *testing.T) {
	inner := New(KindNotFound, "no rows")
	outer := fmt.Errorf("loading user: %w", inner)

	assert.True(t, IsNotFound(outer))
	assert.False(t, IsQuery(outer))
}
