package progress

import (
	"context"

	"go.uber.org/zap"
)

// LogReporter journalise chaque événement
type LogReporter struct {
	logger *zap.Logger
}

func NewLogReporter(logger *zap.Logger) *LogReporter {
	return &LogReporter{logger: logger.Named("progress")}
}

func (r *LogReporter) Report(_ context.Context, ev Event) error {
	fields := []zap.Field{
		zap.String("task_id", ev.TaskID),
		zap.Int("progress", ev.Progress),
		zap.String("status", string(ev.Status)),
	}
	if ev.Status == StatusError {
		r.logger.Error(ev.Message, append(fields, zap.String("error", ev.Error))...)
		return nil
	}
	r.logger.Info(ev.Message, fields...)
	return nil
}
