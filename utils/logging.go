package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	SetLoggerConsole(false)
}

var colourDisabled bool

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	_
	_
	_
	_
	colorBold = 1
)

// V stringifies a value for log messages without letting the compiler
// think the argument escapes to the heap on the hot logging paths.
func V[T any](val T) string {
	return fmt.Sprintf("%v", val)
}

func F[T any](format string, val T) string {
	return fmt.Sprintf(format, val)
}

func colorize(s interface{}, c int) string {
	if colourDisabled {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

// SetLevel maps a 0/1/2+ debug flag onto zerolog's info/debug/trace levels,
// matching the -debug CLI flag described in the external interfaces.
func SetLevel(level int) {
	switch {
	case level <= 0:
		log.Logger = log.With().Logger().Level(zerolog.InfoLevel)
	case level == 1:
		log.Logger = log.With().Logger().Level(zerolog.DebugLevel)
	default:
		log.Logger = log.With().Logger().Level(zerolog.TraceLevel)
	}
}

func SetLoggerConsole(noColour bool) {
	colourDisabled = noColour
	zerolog.CallerMarshalFunc = callerMarshal

	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly, NoColor: noColour}
	cw.FormatCaller = consoleFormatCaller
	cw.FormatLevel = consoleFormatLevel
	cw.PartsOrder = []string{
		zerolog.TimestampFieldName,
		zerolog.CallerFieldName,
		zerolog.LevelFieldName,
		zerolog.MessageFieldName,
	}
	log.Logger = log.With().Caller().Logger().Output(cw)
}

func callerMarshal(_ uintptr, file string, line int) string {
	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	out := fmt.Sprintf("%15s.%-4s", short, strconv.Itoa(line))
	if len(out) > 20 {
		out = ".." + out[len(out)-18:]
	}
	return colorize(out, colorBlack)
}

func consoleFormatCaller(i any) string {
	c, _ := i.(string)
	if c == "" {
		return c
	}
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, c); err == nil {
			c = rel
		}
	}
	return colorize(c, colorBold)
}

func consoleFormatLevel(i any) string {
	ll, ok := i.(string)
	if !ok {
		if i == nil {
			return colorize("| ??? |", colorBold)
		}
		return strings.ToUpper(fmt.Sprintf("| %5s |", i))
	}
	switch ll {
	case zerolog.LevelDebugValue:
		return colorize("| DEBUG |", colorYellow)
	case zerolog.LevelInfoValue:
		return colorize("| INFO  |", colorGreen)
	case zerolog.LevelWarnValue:
		return colorize("| WARN  |", colorRed)
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return colorize(colorize(fmt.Sprintf("| %-5s |", strings.ToUpper(ll)), colorRed), colorBold)
	default:
		return colorize(ll, colorBold)
	}
}

// MemoryStats logs a snapshot of runtime.MemStats, used before/after a run
// per the statistics surface's memory-info requirement.
func MemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Info().Msg("(MiB) Alloc: " + V(m.Alloc/1024/1024) +
		" Sys: " + V(m.Sys/1024/1024) +
		" TotalAlloc: " + V(m.TotalAlloc/1024/1024) +
		" HeapInuse: " + V(m.HeapInuse/1024/1024) +
		". NumGC: " + V(m.NumGC))
}
