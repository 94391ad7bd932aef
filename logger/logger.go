package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// The loggers are usable from package load, writing to stdout. InitLoggers
// adds rotating file output on top.
var (
	InfoLogger  = newLogger()
	ErrorLogger = newLogger()
)

// InitLoggers attaches rotating log files to the shared loggers. Call once
// at startup.
func InitLoggers() {
	attachRotation(InfoLogger, "logs/info.log")
	attachRotation(ErrorLogger, "logs/error.log")
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetOutput(os.Stdout)
	return l
}

func attachRotation(l *logrus.Logger, path string) {
	rotated := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(os.Stdout, rotated))
}
