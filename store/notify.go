package store

import (
	"errors"

	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
)

// Level of a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification Transient user-facing message about a finished operation
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives one notification per settled fetch failure or mutation.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.Get().Named("notify")}
}

func (n *LogNotifier) Notify(note Notification) {
	if note.Level == LevelError {
		n.log.Warn(note.Message, zap.String("level", string(note.Level)))
		return
	}
	n.log.Info(note.Message, zap.String("level", string(note.Level)))
}

// reporter turns outcomes into notifications.
type reporter struct {
	notifier Notifier
}

func (r reporter) success(message string) {
	r.notifier.Notify(Notification{Level: LevelSuccess, Message: message})
}

// failure notifies err unless the user already sees it inline or it is moot.
// Validation and logical failures are returned to the form that caused them.
func (r reporter) failure(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.CodeValidation, apperrors.CodeLogical, apperrors.CodeStaleResponse:
			return err
		}
	}
	r.notifier.Notify(Notification{Level: LevelError, Message: apperrors.Message(err)})
	return err
}

// done reports err, or message when err is nil.
func (r reporter) done(err error, message string) error {
	if err != nil {
		return r.failure(err)
	}
	r.success(message)
	return nil
}
