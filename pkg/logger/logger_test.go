package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockLogLevel int8 = 0

func TestNewWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	lgr, zl := New(&buf, mockLogLevel)
	lgr.Info("sorted", "field", "name")
	require.NoError(t, zl.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "sorted", entry[MessageKey])
	assert.Equal(t, "name", entry["field"])
	assert.Contains(t, entry, TimeStampKey)
	assert.Contains(t, entry, VersionKey)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr, zl := New(&buf, mockLogLevel)
	lgr.V(1).Info("debug detail")
	require.NoError(t, zl.Sync())
	assert.Empty(t, buf.String())

	buf.Reset()
	lgr, zl = New(&buf, -1)
	lgr.V(1).Info("debug detail")
	require.NoError(t, zl.Sync())
	assert.Contains(t, buf.String(), "debug detail")
}

func TestGetReturnsSameInstance(t *testing.T) {
	l1 := Get(mockLogLevel)
	l2 := Get(mockLogLevel)
	require.NotNil(t, l1)
	assert.Same(t, l1, l2)
}

func TestGetReturnsNoopWhenGlobalNil(t *testing.T) {
	_ = Get(mockLogLevel)
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Get(mockLogLevel))
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	lgr := Get(mockLogLevel)

	withLgr := WithLogger(ctx, lgr)
	assert.Same(t, lgr, withLgr.Value(loggerContextKey{}))
	assert.True(t, withLgr == WithLogger(withLgr, lgr), "same logger should not re-wrap the context")

	other := logr.Discard()
	replaced := WithLogger(withLgr, &other)
	assert.Same(t, &other, replaced.Value(loggerContextKey{}))
}

func TestFromContext(t *testing.T) {
	lgr := Get(mockLogLevel)
	ctx := context.WithValue(context.Background(), loggerContextKey{}, lgr)
	assert.Same(t, lgr, FromContext(ctx))
	assert.Same(t, lgr, FromContext(context.Background()))

	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
}

func TestSyncWithoutLogger(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	assert.NotPanics(t, Sync)
}

func TestGetNoopLogger(t *testing.T) {
	got := GetNoopLogger()
	require.NotNil(t, got)
	assert.Same(t, &defaultNoopLogger, got)
	assert.NotPanics(t, func() { got.Info("nothing") })
}

func TestWithValues(t *testing.T) {
	lgr := Get(mockLogLevel)
	withVals := WithValues(lgr, "k", "v")
	require.NotNil(t, withVals)
	assert.NotSame(t, lgr, withVals)

	var nilLogger *logr.Logger
	assert.Panics(t, func() { _ = WithValues(nilLogger, "k", "v") })
}
