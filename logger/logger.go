package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	OffLevel
)

var (
	defaultLogger *Logger

	debugPrintf = color.New(color.FgCyan).SprintfFunc()
	infoPrintf  = color.New(color.FgGreen).SprintfFunc()
	warnPrintf  = color.New(color.FgYellow).SprintfFunc()
	errorPrintf = color.New(color.FgRed).SprintfFunc()
)

/*
レベル付きのロガー。
警告は出力レベルに関わらず記録され、Warnings で取り出せる。
*/
type Logger struct {
	logger   *log.Logger
	level    Level
	warnings []string
	colored  bool
	mu       sync.Mutex
}

func init() {
	defaultLogger = New(os.Stderr, WarnLevel)
}

// New は w に出力するロガーを生成する。
func New(w io.Writer, level Level) *Logger {
	l := &Logger{level: level}
	l.SetOutput(w)
	return l
}

// Default はパッケージ既定のロガーを返す。
func Default() *Logger {
	return defaultLogger
}

/*
文字列からログレベルを求める。

	Args:
		s: "DEBUG", "INFO", "WARN", "ERROR", "OFF" (大文字小文字を区別しない)

	Returns:
		ログレベル
*/
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "OFF":
		return OffLevel, nil
	default:
		return OffLevel, fmt.Errorf("invalid log level %q", s)
	}
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = log.New(w, "", log.LstdFlags)

	// 端末以外への出力では色を付けない
	f, ok := w.(*os.File)
	l.colored = ok && (f == os.Stdout || f == os.Stderr)
}

func (l *Logger) print(level Level, sprintf func(string, ...interface{}) string, prefix, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level > level {
		return
	}
	if l.colored {
		l.logger.Print(sprintf(prefix+format, v...))
	} else {
		l.logger.Printf(prefix+format, v...)
	}
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.print(DebugLevel, debugPrintf, "[DEBUG] ", format, v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.print(InfoLevel, infoPrintf, "[INFO] ", format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.mu.Lock()
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
	l.mu.Unlock()
	l.print(WarnLevel, warnPrintf, "[WARN] ", format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.print(ErrorLevel, errorPrintf, "[ERROR] ", format, v...)
}

// Warnings は記録された警告メッセージの写しを返す。
func (l *Logger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.warnings))
	copy(out, l.warnings)
	return out
}

func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}
