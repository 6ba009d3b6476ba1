// Package logger is a thin, leveled wrapper around zerolog giving
// ais-compress and ais-decompress the same small API surface regardless of
// which library backs it: Debug/Info/Warning/Error/Fatal for one-shot
// messages, Compose for messages assembled across multiple calls, and
// AddPeriodic for backoff-paced recurring stats lines.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// log message importance, kept as the teacher's own integer scale rather
// than zerolog.Level so callers written against this package don't need to
// import zerolog themselves.
const (
	Debug   int = 9 // temporary or possibly interesting
	Info    int = 7 // interesting
	Warning int = 5 // temporary or client error
	Error   int = 3 // permanent degradation
	Fatal   int = 1 // irrecoverable error
)

// fatalExitCode is the code Logger aborts the process with after a
// Fatal-level message.
const fatalExitCode int = 3

func zerologLevel(level int) zerolog.Level {
	switch {
	case level >= Debug:
		return zerolog.DebugLevel
	case level >= Info:
		return zerolog.InfoLevel
	case level >= Warning:
		return zerolog.WarnLevel
	case level >= Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}

// Logger is a thread-safe, periodic-logging-capable wrapper around a
// zerolog.Logger. Should not be copied after construction.
type Logger struct {
	z        zerolog.Logger
	Treshold int
	p        periodic
}

// NewLogger creates a new Logger writing to writeTo at the given importance
// treshold. It also starts the periodic-stats goroutine, which sleeps until
// a logger registered with AddPeriodic is due and exits on Close.
func NewLogger(writeTo io.Writer, level int) *Logger {
	l := &Logger{
		Treshold: level,
		p:        newPeriodic(),
	}
	l.z = zerolog.New(writeTo).Level(zerologLevel(level)).With().Timestamp().Logger()
	go periodicRunner(l)
	return l
}

// Close stops the periodic-logger goroutine. The underlying writer, if it
// needs closing, is the caller's responsibility: Logger never assumed
// ownership of it once zerolog could take an io.Writer instead of an
// io.WriteCloser.
func (l *Logger) Close() {
	l.p.Close()
}

func (l *Logger) log(level int, format string, args ...interface{}) {
	if level > l.Treshold {
		return
	}
	ev := l.event(level)
	if len(args) == 0 {
		ev.Msg(format)
	} else {
		ev.Msgf(format, args...)
	}
	if level == Fatal {
		os.Exit(fatalExitCode)
	}
}

func (l *Logger) event(level int) *zerolog.Event {
	switch {
	case level >= Debug:
		return l.z.Debug()
	case level >= Info:
		return l.z.Info()
	case level >= Warning:
		return l.z.Warn()
	case level >= Error:
		return l.z.Error()
	default:
		return l.z.WithLevel(zerolog.FatalLevel)
	}
}

// Wrappers around log().

func (l *Logger) Debugf(format string, args ...interface{})   { l.log(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})    { l.log(Info, format, args...) }
func (l *Logger) Warningf(format string, args ...interface{}) { l.log(Warning, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{})   { l.log(Error, format, args...) }
func (l *Logger) Fatalf(format string, args ...interface{})   { l.log(Fatal, format, args...) }

// FatalIf does nothing if cond is false, but otherwise prints the message
// and aborts the process.
func (l *Logger) FatalIf(cond bool, format string, args ...interface{}) {
	if cond {
		l.Fatalf(format, args...)
	}
}

// FatalIfErr does nothing if err is nil, but otherwise prints
// "Failed to <..>: $err.Error()" and aborts the process.
func (l *Logger) FatalIfErr(err error, format string, args ...interface{}) {
	if err != nil {
		args = append(args, err.Error())
		l.Fatalf("Failed to "+format+": %s", args...)
	}
}

// Compose returns a zerolog.Event for level, to let a caller add structured
// fields before emitting the message, e.g. l.Compose(logger.Info).
// Int("window", n).Msg("started"). If level is below the treshold the
// returned event is zerolog's own no-op Event, so chaining is always safe.
func (l *Logger) Compose(level int) *zerolog.Event {
	return l.event(level)
}
