package settings

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is shared by every stage. Stages add a "stage" field and runs add a "run" field.
//
// Tokens and trees are traced at Trace level, call dispatch at Debug.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

func ParseLevel(level string) (logrus.Level, error) {
	if level == "" {
		return logrus.WarnLevel, nil
	}
	return logrus.ParseLevel(level)
}

// ApplyLogging sets the level of the shared logger from the config, and optionally redirects it.
func ApplyLogging(cfg Config, out io.Writer) {
	if level, e := ParseLevel(cfg.LogLevel); e == nil {
		Log.SetLevel(level)
	}
	if out != nil {
		Log.SetOutput(out)
	}
}

func Stage(name string) *logrus.Entry {
	return Log.WithField("stage", name)
}
