package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu     sync.Mutex
	level  = LevelInfo
	output io.Writer = os.Stderr

	tags = map[Level]string{
		LevelDebug: color.New(color.FgHiBlack).Sprint("DEBUG"),
		LevelInfo:  color.New(color.FgHiBlue).Sprint("INFO "),
		LevelWarn:  color.New(color.FgHiYellow).Sprint("WARN "),
		LevelError: color.New(color.FgHiRed).Sprint("ERROR"),
	}
)

// * SetLevel drops every message below l
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// * SetOutput redirects log lines, mostly useful in tests
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if l < level {
		return
	}

	fmt.Fprintf(output, "%s %s %s\n", time.Now().Format("2006-01-02 15:04:05"), tags[l], fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

func Error(format string, args ...any) { logf(LevelError, format, args...) }
