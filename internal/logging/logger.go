package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	Debug   bool
	LogFile string
}

// Setup builds the JSON logger and makes it the slog default. With a LogFile,
// output goes to stdout and to a rotating file. The returned closer releases the file.
func Setup(params SetupParams) (*slog.Logger, io.Closer) {
	programLevel := slog.LevelInfo
	if params.Debug {
		programLevel = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if params.LogFile != "" {
		name := params.LogFile
		if !strings.HasSuffix(name, ".log") {
			name += ".log"
		}
		lumberJackLogger := &lumberjack.Logger{
			Filename:  name,
			MaxSize:   50, // megabytes
			LocalTime: false,
			Compress:  true,
		}
		out = io.MultiWriter(os.Stdout, lumberJackLogger)
		closer = lumberJackLogger
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: programLevel}))
	slog.SetDefault(logger)
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
