// SPDX-License-Identifier: Apache-2.0

package config

import (
	"io"
	"os"
	"path"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logOutput receives console logs. stdout is reserved for command output.
// use var to allow mocking in tests
var logOutput io.Writer = os.Stderr

func init() {
	// initialize logging with defaults
	_ = InitLogging(globalConfig.Log)
}

// InitLogging sets up the global logger from cfg. logx applies the level;
// the writers are rebuilt here so that console logs never reach stdout.
func InitLogging(cfg logx.LoggingConfig) error {
	if err := logx.Initialize(cfg); err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid log configuration").
			WithProperty(errorx.PropertyPayload(), cfg.Level)
	}

	var writers []io.Writer
	if cfg.ConsoleLogging {
		writers = append(writers, zerolog.ConsoleWriter{Out: logOutput, TimeFormat: time.RFC3339})
	}
	if cfg.FileLogging {
		writers = append(writers, &lumberjack.Logger{
			Filename:   path.Join(cfg.Directory, cfg.Filename),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}

	if len(writers) == 0 {
		logx.SetLogger(zerolog.Nop())
		return nil
	}

	logx.SetLogger(zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Int("pid", logx.GetPid()).
		Logger())
	return nil
}
