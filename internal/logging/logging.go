package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Setup builds the process logger. format is "json" or "text".
func Setup(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}

	var formatter logrus.Formatter
	switch format {
	case "json":
		formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		}
	case "text", "":
		formatter = &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		}
	default:
		return nil, fmt.Errorf("logging format %q: must be \"text\" or \"json\"", format)
	}

	logger := logrus.Logger{
		Formatter: formatter,
		Out:       out,
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl,
	}

	return &logger, nil
}
