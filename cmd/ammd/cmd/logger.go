// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSize  = 8 // megabytes
	logMaxAge   = 7 // days
	logMaxFiles = 4
)

// newLogger writes to stderr and, when [dir] is set, to a rotating JSON log
// file named after [name].
func newLogger(name string, level logging.Level, dir string) logging.Logger {
	consoleCore := logging.NewWrappedCore(level, os.Stderr, logging.Colors.ConsoleEncoder())
	if dir == "" {
		return logging.NewLogger("", consoleCore)
	}

	rw := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name+".log"),
		MaxSize:    logMaxSize,
		MaxAge:     logMaxAge,
		MaxBackups: logMaxFiles,
		Compress:   true,
	}
	fileCore := logging.NewWrappedCore(level, rw, logging.JSON.FileEncoder())
	return logging.NewLogger("", consoleCore, fileCore)
}
