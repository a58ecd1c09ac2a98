package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/gymstreak/pkg"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFileMaxSizeMB = 50

type LoggerSetupParams struct {
	// empty means stdout only
	LogFileName      string
	LogFileMaxSizeMB int
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger: level, format, outputs and the optional
// sentry hook.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		log.SetFormatter(&log.JSONFormatter{
			FieldMap: log.FieldMap{
				log.FieldKeyTime: "ts",
				log.FieldKeyMsg:  "message",
			},
		})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	log.SetLevel(GetLevel(params.LogLevel))
	log.SetOutput(newLogWriter(params))

	if params.SentryEnabled {
		setupSentry(params)
	}
}

func newLogWriter(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		log.Println("writing logs only to STDOUT")
		return os.Stdout
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	maxSize := params.LogFileMaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultLogFileMaxSizeMB
	}

	// rotated files are kept, no MaxBackups / MaxAge
	fileWriter := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   maxSize,
		LocalTime: false,
		Compress:  true,
	}

	if !params.LogToStdout {
		return fileWriter
	}
	log.Println("writing logs to file and STDOUT")
	return pkg.NewCombinedWriter(os.Stdout, fileWriter)
}

func setupSentry(params LoggerSetupParams) {
	if err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	}); err != nil {
		log.Errorf("sentry init: %s", err)
		return
	}

	log.AddHook(NewSentryHook([]log.Level{
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
	}))
	log.Infoln("sentry set up")
}

// GetLevel maps a config level name to a logrus level, defaulting to trace.
func GetLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return log.TraceLevel
	}
	return parsed
}
