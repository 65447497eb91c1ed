package internal

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"hotelbooking/entity"
	"testing"
)

func TestLogger_StoresWarningsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	db := new(MockDatabase)
	db.On("WriteLogMessage", mock.Anything, mock.MatchedBy(func(m *entity.LogMessage) bool {
		return m.Level == "error" && m.Category == "payments" && m.Text == "save order: boom"
	})).Return(nil).Once()
	db.On("WriteLogMessage", mock.Anything, mock.MatchedBy(func(m *entity.LogMessage) bool {
		return m.Level == "warn" && m.Text == "careful"
	})).Return(nil).Once()

	logger := newLogger("payments", zap.New(core), db)
	logger.Debug("details")
	logger.Info("started")
	logger.Warn("careful")
	logger.Error("save order", errors.New("boom"))

	assert.Equal(t, 4, logs.Len())
	entry := logs.All()[3]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "payments", entry.ContextMap()["category"])
	assert.Equal(t, "boom", entry.ContextMap()["error"])
	db.AssertExpectations(t)
}

func TestLogger_WithoutDatabase(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := newLogger("server", zap.New(core), nil)
	logger.Debug("hidden")
	logger.Error("failed", nil)
	assert.Equal(t, 1, logs.Len())
}
