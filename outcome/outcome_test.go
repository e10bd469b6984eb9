package outcome

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGuard_Success(t *testing.T) {
	res := Guard(quietLogger(), "test", func() int { return -1 }, func() (int, error) {
		return 42, nil
	})
	assert.True(t, res.OK())
	assert.Equal(t, 42, res.Value)
	assert.Equal(t, KindOK, res.Kind())
}

func TestGuard_PanicUsesFallback(t *testing.T) {
	res := Guard(quietLogger(), "test", func() int { return -1 }, func() (int, error) {
		var m map[string]int
		m["boom"] = 1
		return 0, nil
	})
	require.Error(t, res.Err)
	assert.Equal(t, -1, res.Value)
	assert.Equal(t, KindComputationFailure, res.Kind())
	assert.ErrorIs(t, res.Err, ErrComputationFailure)
}

func TestGuard_NoDataKeepsValue(t *testing.T) {
	res := Guard(quietLogger(), "test", func() int { return -1 }, func() (int, error) {
		return 0, ErrNoData
	})
	assert.Equal(t, 0, res.Value)
	assert.Equal(t, KindNoData, res.Kind())
}

func TestGuard_MalformedKeepsValue(t *testing.T) {
	res := Guard(quietLogger(), "test", func() int { return -1 }, func() (int, error) {
		return 7, Malformed("entry %d", 3)
	})
	assert.Equal(t, 7, res.Value)
	assert.Equal(t, KindMalformedInput, res.Kind())
	assert.Contains(t, res.Err.Error(), "entry 3")
}

func TestGuard_UnknownErrorIsComputationFailure(t *testing.T) {
	res := Guard(quietLogger(), "test", func() int { return -1 }, func() (int, error) {
		return 9, errors.New("disk on fire")
	})
	assert.Equal(t, -1, res.Value)
	assert.ErrorIs(t, res.Err, ErrComputationFailure)
	assert.Contains(t, res.Err.Error(), "disk on fire")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindOK},
		{ErrNoData, KindNoData},
		{Malformed("x"), KindMalformedInput},
		{Failed("y"), KindComputationFailure},
		{errors.New("other"), KindComputationFailure},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, KindOf(tc.err))
	}
}
