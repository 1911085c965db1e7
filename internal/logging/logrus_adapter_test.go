package logging

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{"debug level with text format", "debug", "text", logrus.DebugLevel},
		{"info level with json format", "info", "json", logrus.InfoLevel},
		{"upper case level", "WARN", "text", logrus.WarnLevel},
		{"error level with JSON format", "error", "JSON", logrus.ErrorLevel},
		{"invalid level defaults to info", "invalid", "text", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.Level())

			if tt.format == "json" || tt.format == "JSON" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithWriter("info", "json", &buf)

	logger.Info("parsed invoice", F(FieldReferenceMonth, "MAI/2025"))

	assert.Contains(t, buf.String(), `"reference_month":"MAI/2025"`)
	assert.Contains(t, buf.String(), `"msg":"parsed invoice"`)
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		existingLogger := logrus.New()
		existingLogger.SetLevel(logrus.DebugLevel)

		adapter, ok := NewLogrusAdapterFromLogger(existingLogger).(*LogrusAdapter)
		require.True(t, ok)
		assert.Equal(t, existingLogger, adapter.logger)
	})

	t.Run("with nil logger creates new one", func(t *testing.T) {
		adapter, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
		require.True(t, ok)
		assert.NotNil(t, adapter.logger)
	})
}

func TestLogrusAdapter_LoggingMethods(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...Field)
		message string
		fields  []Field
	}{
		{"Debug with fields", func(l Logger, msg string, f ...Field) { l.Debug(msg, f...) }, "line rejected", []Field{F(FieldReason, "no city")}},
		{"Info with fields", func(l Logger, msg string, f ...Field) { l.Info(msg, f...) }, "invoice parsed", []Field{F(FieldCount, 3)}},
		{"Warn with fields", func(l Logger, msg string, f ...Field) { l.Warn(msg, f...) }, "field missing", []Field{F(FieldField, "dueDate")}},
		{"Error with fields", func(l Logger, msg string, f ...Field) { l.Error(msg, f...) }, "pipeline failed", []Field{F(FieldFile, "a.pdf")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedLogger(logrus.DebugLevel)

			tt.logFunc(logger, tt.message, tt.fields...)

			output := buf.String()
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, tt.fields[0].Key)
		})
	}
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.InfoLevel)

	logger.
		WithField(FieldRunID, "run-1").
		WithFields(F(FieldFile, "fatura.pdf")).
		WithError(errors.New("no pages")).
		Error("extraction failed")

	output := buf.String()
	assert.Contains(t, output, "extraction failed")
	assert.Contains(t, output, "run-1")
	assert.Contains(t, output, "fatura.pdf")
	assert.Contains(t, output, "no pages")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewDiscardLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewDiscardLogger().WithField("a", 1).Info("dropped")
	})
}

func TestMockLogger(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("start")
	mock.WithField(FieldFile, "a.pdf").Warn("field missing", F(FieldField, "dueDate"))
	mock.WithError(errors.New("boom")).Error("failed")

	require.Len(t, mock.GetEntries(), 3)
	assert.True(t, mock.HasEntry("WARN", "field missing"))
	warn := mock.GetEntriesByLevel("WARN")[0]
	assert.Equal(t, []Field{F(FieldFile, "a.pdf"), F(FieldField, "dueDate")}, warn.Fields)
	assert.EqualError(t, mock.GetEntriesByLevel("ERROR")[0].Error, "boom")

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestMockLogger_Concurrent(t *testing.T) {
	mock := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mock.WithField("i", i).Debug("tick")
		}(i)
	}
	wg.Wait()

	assert.Len(t, mock.GetEntriesByLevel("DEBUG"), 20)
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
