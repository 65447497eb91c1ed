package internal

import (
	"context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"hotelbooking/entity"
	"hotelbooking/services"
	"time"
)

const logWriteTimeout = 5 * time.Second

// discard is the default logger of services until SetLogger is called.
var discard = newLogger("", zap.NewNop(), nil)

// Logger writes structured logs through zap; warnings and errors are also
// stored in the database when one is set.
type Logger struct {
	category string
	log      *zap.Logger
	database services.Database
}

func NewLogger(category string, debug bool, database services.Database) *Logger {
	conf := zap.NewProductionConfig()
	conf.EncoderConfig.TimeKey = "time"
	conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		conf.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := conf.Build()
	if err != nil {
		log = zap.NewNop()
	}
	return newLogger(category, log, database)
}

func newLogger(category string, log *zap.Logger, database services.Database) *Logger {
	return &Logger{
		category: category,
		log:      log.With(zap.String("category", category)),
		database: database,
	}
}

func (l *Logger) Debug(text string) {
	l.log.Debug(text)
}

func (l *Logger) Info(text string) {
	l.log.Info(text)
}

func (l *Logger) Warn(text string) {
	l.log.Warn(text)
	l.store("warn", text)
}

func (l *Logger) Error(text string, err error) {
	l.log.Error(text, zap.Error(err))
	if err != nil {
		text = text + ": " + err.Error()
	}
	l.store("error", text)
}

func (l *Logger) Sync() {
	_ = l.log.Sync()
}

func (l *Logger) store(level, text string) {
	if l.database == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
	defer cancel()
	message := &entity.LogMessage{
		Time:     time.Now(),
		Level:    level,
		Category: l.category,
		Text:     text,
	}
	if err := l.database.WriteLogMessage(ctx, message); err != nil {
		l.log.Warn("write log message", zap.Error(err))
	}
}
