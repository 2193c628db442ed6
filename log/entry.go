package log

import (
	"io"
	"maps"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Fields logrus.Fields

type Level uint32

// Same ordering as logrus levels.
const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}

// SetOutput sets the destination of all log modules.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// Entry is a module bound to a set of context fields, such as the ROM being
// patched. Entries are values: WithField never alters the receiver.
type Entry struct {
	mod    Module
	fields Fields
}

// WithField returns a copy of entry with key set to value.
func (entry Entry) WithField(key string, value any) Entry {
	fields := make(Fields, len(entry.fields)+1)
	maps.Copy(fields, entry.fields)
	fields[key] = value
	return Entry{mod: entry.mod, fields: fields}
}

func (entry Entry) logf(lvl Level, format string, args ...any) {
	if !entry.mod.Enabled(lvl) {
		return
	}

	fields := make(logrus.Fields, len(entry.fields)+1)
	maps.Copy(fields, logrus.Fields(entry.fields))
	fields["_mod"] = entry.mod.String()
	final := logrus.StandardLogger().WithFields(fields)

	switch lvl {
	case DebugLevel:
		final.Debugf(format, args...)
	case InfoLevel:
		final.Infof(format, args...)
	case WarnLevel:
		final.Warnf(format, args...)
	case ErrorLevel:
		final.Errorf(format, args...)
	case FatalLevel:
		final.Fatalf(format, args...)
	}
}

func (entry Entry) Infof(format string, args ...any) {
	entry.logf(InfoLevel, format, args...)
}

func (entry Entry) Warnf(format string, args ...any) {
	entry.logf(WarnLevel, format, args...)
}

func (entry Entry) Errorf(format string, args ...any) {
	entry.logf(ErrorLevel, format, args...)
}
