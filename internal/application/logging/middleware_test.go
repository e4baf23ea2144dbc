package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/andrescamacho/mediator-go/internal/application/logging"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

type greetCommand struct {
	Name string
}

func newObservedLogger() (*logging.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.NewZapLogger(zap.New(core)), logs
}

func TestLoggingMiddleware_Success(t *testing.T) {
	// Arrange
	logger, logs := newObservedLogger()
	mw := logging.LoggingMiddleware(logger)

	var seenID string
	var seenLogger logging.Logger
	next := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		seenID = logging.RequestIDFromContext(ctx)
		seenLogger = logging.LoggerFromContext(ctx)
		return "hello", nil
	}

	// Act
	resp, err := mw(context.Background(), &greetCommand{Name: "ada"}, next)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "hello", resp)
	assert.Regexp(t, `^greetCommand-[a-f0-9]{8}$`, seenID)
	assert.Same(t, logger, seenLogger)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "Dispatching request", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "Request completed", entries[1].Message)

	fields := entries[1].ContextMap()
	assert.Equal(t, "greetCommand", fields["request"])
	assert.Equal(t, seenID, fields["request_id"])
	assert.Contains(t, fields, "duration_ms")
}

func TestLoggingMiddleware_FailureLevels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level zapcore.Level
	}{
		{
			name:  "validation failure logs a warning",
			err:   &mediator.ValidationError{Failures: []mediator.ValidationFailure{{Field: "name", Message: "must not be empty"}}},
			level: zapcore.WarnLevel,
		},
		{
			name:  "handler failure logs an error",
			err:   errors.New("storage unavailable"),
			level: zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newObservedLogger()
			mw := logging.LoggingMiddleware(logger)

			resp, err := mw(context.Background(), greetCommand{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
				return nil, tt.err
			})

			assert.Nil(t, resp)
			assert.Same(t, tt.err, err)

			failed := logs.FilterMessage("Request failed").All()
			require.Len(t, failed, 1)
			assert.Equal(t, tt.level, failed[0].Level)
			assert.Equal(t, tt.err.Error(), failed[0].ContextMap()["error"])
		})
	}
}

func TestLoggingMiddleware_NilLoggerUsesContext(t *testing.T) {
	logger, logs := newObservedLogger()
	ctx := logging.WithLogger(context.Background(), logger)
	mw := logging.LoggingMiddleware(nil)

	_, err := mw(ctx, greetCommand{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Request completed").Len())
}

func TestLoggerFromContext_DefaultsToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())

	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Log(logging.LevelInfo, "discarded", nil)
	})
	assert.Empty(t, logging.RequestIDFromContext(context.Background()))
}

func TestZapLogger_LevelMapping(t *testing.T) {
	logger, logs := newObservedLogger()

	logger.Log(logging.LevelDebug, "d", nil)
	logger.Log(logging.LevelInfo, "i", nil)
	logger.Log("WARN", "w1", nil)
	logger.Log(logging.LevelWarn, "w2", nil)
	logger.Log(logging.LevelError, "e", map[string]interface{}{"error": errors.New("boom"), "attempt": 2})
	logger.Log("unknown", "fallback", nil)

	levels := make([]zapcore.Level, 0, logs.Len())
	for _, entry := range logs.All() {
		levels = append(levels, entry.Level)
	}
	assert.Equal(t, []zapcore.Level{
		zapcore.DebugLevel,
		zapcore.InfoLevel,
		zapcore.WarnLevel,
		zapcore.WarnLevel,
		zapcore.ErrorLevel,
		zapcore.InfoLevel,
	}, levels)

	errEntry := logs.FilterMessage("e").All()[0].ContextMap()
	assert.Equal(t, "boom", errEntry["error"])
	assert.Equal(t, int64(2), errEntry["attempt"])
}

func TestNewProductionLogger(t *testing.T) {
	_, err := logging.NewProductionLogger("info", "json")
	assert.NoError(t, err)

	_, err = logging.NewProductionLogger("debug", "text")
	assert.NoError(t, err)

	_, err = logging.NewProductionLogger("info", "xml")
	assert.Error(t, err)

	_, err = logging.NewProductionLogger("loud", "json")
	assert.Error(t, err)
}
