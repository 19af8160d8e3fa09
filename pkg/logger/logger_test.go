package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextFallsBackToGlobal(t *testing.T) {
	entry := G(context.Background())
	require.NotNil(t, entry)
	assert.Equal(t, L.Logger, entry.Logger)
}

func TestWithLoggerRoundTrip(t *testing.T) {
	base := logrus.NewEntry(logrus.New()).WithField("component", "discovery")
	ctx := WithLogger(context.Background(), base)

	entry := G(ctx)
	assert.Equal(t, "discovery", entry.Data["component"])
}

func TestWithLoggerFieldAccumulation(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)

	ctx := WithLogger(context.Background(), logrus.NewEntry(l).WithField("skill", "pdf-tools"))
	ctx = WithLogger(ctx, G(ctx).WithField("tool", "merge"))

	G(ctx).Info("executing")

	out := buf.String()
	assert.Contains(t, out, "skill=pdf-tools")
	assert.Contains(t, out, "tool=merge")
}

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { L.Logger.SetLevel(logrus.InfoLevel) })

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	err := SetLogLevel("verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "verbose"`)
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	applyFormat(l, "json")

	logrus.NewEntry(l).Info("structured message")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "structured message", record["message"])
	assert.Equal(t, "info", record["logLevel"])
	assert.Contains(t, record, "timestamp")
}

func TestTextFormatIsDefault(t *testing.T) {
	l := newLogger()
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}
