package errors

import (
	stderrors "errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"marathonviz/domain/core"
)

func TestClassifyDomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"parse", core.NewParseError("3:xx", "expected HH:MM:SS"), CodeInvalidInput},
		{"missing column", core.NewMissingColumnError("TULEMUS"), CodeInvalidInput},
		{"empty group", core.NewEmptyGroupError("N"), CodeEmptyGroup},
		{"configuration", core.NewConfigurationError("interval", "must be positive"), CodeConfigInvalid},
		{"other", stderrors.New("boom"), CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

func TestWrapKeepsCauseAndCode(t *testing.T) {
	cause := core.NewParseError("abc", "expected HH:MM:SS")
	err := Wrapf(cause, "row %d", 7)

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.ErrorIs(t, err, core.ErrParse)
	assert.Contains(t, err.Error(), "row 7")

	outer := Wrap(IOError("read", "in.csv", os.ErrNotExist), "loading results")
	assert.Equal(t, CodeIOError, GetCode(outer))
	assert.ErrorIs(t, outer, os.ErrNotExist)
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing %d", 1))
}

func TestConfigInvalidMatchesSentinel(t *testing.T) {
	err := ConfigInvalid("RACE_DISTANCE_KM must be a number")
	assert.ErrorIs(t, err, core.ErrConfiguration)
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
