package errors

import (
	stderr "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	sentinel := New("boom")
	cause := stderr.New("io failure")

	wrapped := sentinel.Wrap(cause)
	require.NotSame(t, sentinel, wrapped)

	assert.True(t, Is(wrapped, sentinel))
	assert.True(t, Is(wrapped, cause))
	assert.Equal(t, "boom: io failure", wrapped.Error())

	// the sentinel itself is untouched
	assert.Nil(t, sentinel.Unwrap())
	assert.Equal(t, "boom", sentinel.Error())
}

func TestWrapTwice(t *testing.T) {
	sentinel := New("outer")
	w1 := sentinel.Wrap(stderr.New("first"))
	w2 := sentinel.Wrap(stderr.New("second"))

	assert.True(t, Is(w1, sentinel))
	assert.True(t, Is(w2, sentinel))
	assert.False(t, Is(w1, w2.Unwrap()))
}

func TestAs(t *testing.T) {
	sentinel := New("typed")
	var target *Error
	require.True(t, As(sentinel.WrapMessage("detail"), &target))
	assert.Equal(t, "typed: detail", target.Error())
}

func TestWrapWithLog(t *testing.T) {
	core, observed := observer.New(zapcore.ErrorLevel)
	sentinel := New("corrupt")
	cause := stderr.New("duplicate entry")

	wrapped := sentinel.WrapWithLog(zap.New(core), cause, zap.String("archive", "a.zip"))
	assert.True(t, Is(wrapped, sentinel))
	assert.True(t, Is(wrapped, cause))

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "corrupt", entries[0].Message)

	// a nil logger wraps without logging
	assert.True(t, Is(sentinel.WrapWithLog(nil, cause), sentinel))
}

func TestDistinctSentinelsDontMatch(t *testing.T) {
	a := New("a")
	b := New("b")
	assert.False(t, Is(a.WrapMessage("x"), b))
}
