package backend

import (
	"context"
	"encoding/json"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/volinsight/schema"
)

// Logger sends log notifications to the connected caller
type Logger struct {
	name     string
	notifier transport.Notifier
}

func (l *Logger) log(ctx context.Context, level string, data interface{}) error {
	if l == nil || l.notifier == nil {
		return nil
	}
	notification := &jsonrpc.Notification{Method: schema.MethodNotificationMessage}
	var err error
	notification.Params, err = json.Marshal(schema.LogMessage{Level: level, Logger: l.name, Data: data})
	if err != nil {
		return err
	}
	return l.notifier.Notify(ctx, notification)
}

func (l *Logger) Debug(ctx context.Context, data interface{}) error {
	return l.log(ctx, "debug", data)
}

func (l *Logger) Info(ctx context.Context, data interface{}) error {
	return l.log(ctx, "info", data)
}

func (l *Logger) Warning(ctx context.Context, data interface{}) error {
	return l.log(ctx, "warning", data)
}

func (l *Logger) Error(ctx context.Context, data interface{}) error {
	return l.log(ctx, "error", data)
}

func NewLogger(name string, notifier transport.Notifier) *Logger {
	return &Logger{name: name, notifier: notifier}
}
