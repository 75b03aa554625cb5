// Package logging runs the runtime.Logger interface on logrus so game code can
// log the same way outside a Nakama process.
package logging

import (
	"io"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/sirupsen/logrus"
)

var _ runtime.Logger = (*Logger)(nil)

// Logger adapts a logrus entry to runtime.Logger.
type Logger struct {
	entry *logrus.Entry
}

// New returns a text logger writing to w. verbose enables debug output.
func New(w io.Writer, verbose bool) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableQuote: true})
	l.SetLevel(logrus.InfoLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return Wrap(l)
}

// Wrap adapts an existing logrus logger.
func Wrap(l *logrus.Logger) *Logger {
	return &Logger{entry: logrus.NewEntry(l)}
}

func (l *Logger) Debug(format string, v ...interface{}) { l.entry.Debugf(format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.entry.Infof(format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.entry.Warnf(format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.entry.Errorf(format, v...) }

func (l *Logger) WithField(key string, v interface{}) runtime.Logger {
	return &Logger{entry: l.entry.WithField(key, v)}
}

func (l *Logger) WithFields(fields map[string]interface{}) runtime.Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

func (l *Logger) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(l.entry.Data))
	for k, v := range l.entry.Data {
		out[k] = v
	}
	return out
}
