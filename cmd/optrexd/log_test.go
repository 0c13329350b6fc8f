package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func restoreLog(t *testing.T) {
	w, flags := log.Writer(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(w)
		log.SetFlags(flags)
	})
}

func TestSetupLoggingNoFile(t *testing.T) {
	restoreLog(t)

	closeLog := setupLogging(config{LogStderr: true})
	assert.Equal(t, log.Writer(), io.Writer(os.Stderr))
	closeLog()

	// As in termbox mode: nothing may reach the terminal.
	closeLog = setupLogging(config{LogStderr: false})
	assert.Equal(t, log.Writer(), io.Discard)
	closeLog()
}

func TestSetupLoggingFile(t *testing.T) {
	restoreLog(t)

	path := filepath.Join(t.TempDir(), "optrexd.log")
	closeLog := setupLogging(config{LogFile: path})
	log.Print("hello from the test")
	closeLog()

	b, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(b), "hello from the test"))
}
