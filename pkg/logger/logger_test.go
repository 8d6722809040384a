package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = New("chatty")
	assert.Error(t, err)
}

func TestMustPanics(t *testing.T) {
	assert.Panics(t, func() { Must(New("chatty")) })
	assert.NotPanics(t, func() { Must(New("warn")) })
}

func TestNamedNilBase(t *testing.T) {
	assert.NotNil(t, Named(nil, "router"))
	assert.Equal(t, "svc", Named(zap.NewExample(), "svc").Name())
}
