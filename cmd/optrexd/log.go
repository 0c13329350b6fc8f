package main

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging points the standard logger at a rotated log file, and also at
// stderr if asked. With neither, logs are discarded. The returned func closes
// the log file.
func setupLogging(cfg config) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if cfg.LogFile == "" {
		if cfg.LogStderr {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(io.Discard)
		}
		return func() {}
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	var w io.Writer = lj
	if cfg.LogStderr {
		w = io.MultiWriter(lj, os.Stderr)
	}
	log.SetOutput(w)
	return func() { lj.Close() }
}
