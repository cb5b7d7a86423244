package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

type CustomFormatter struct {
	SystemName string
}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))
	b.WriteByte('\n')

	return b.Bytes(), nil
}

// InitLogger routes the shared logger to a rotating file under dir.
// When dir is empty the logger keeps writing to stderr, which is what
// the tests rely on.
func InitLogger(dir string) {
	if dir == "" {
		Logger.SetFormatter(&CustomFormatter{SystemName: "hackconnect-api"})
		return
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			logrus.Fatalf("Failed to create log directory: %v", err)
		}
	}

	Logger.SetOutput(&lumberjack.Logger{
		Filename:   dir + "/hackconnect.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	Logger.SetFormatter(&CustomFormatter{SystemName: "hackconnect-api"})
	Logger.SetLevel(logrus.InfoLevel)
}
