// Package logging builds the console logger used by the command line tool.
package logging

import (
	"errors"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Options selects the console verbosity.
type Options struct {
	Verbose bool // Debug output
	Quiet   bool // Errors only; wins over Verbose
	Color   bool // Colored level names
}

// Level returns the minimum enabled level for opts.
func (o Options) Level() zapcore.Level {
	switch {
	case o.Quiet:
		return zapcore.ErrorLevel
	case o.Verbose:
		return zapcore.DebugLevel
	default:
		return zapcore.WarnLevel
	}
}

// New returns a console logger writing to w. Diagnostics go to w (stderr
// in the CLI) so they never mix with report output.
func New(w io.Writer, opts Options) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	if opts.Color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(newEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(opts.Level()))
	return zap.New(core).Named("twclass")
}

// When logging an error to the console do not output the verbose message
// or the causes of combined errors.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
