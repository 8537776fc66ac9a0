// Package logging configures the commonlog backend used by every package.
package logging

import (
	"fmt"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// verbosities maps log level names to commonlog verbosity.
var verbosities = map[string]int{
	"none":     -4,
	"critical": -3,
	"error":    -2,
	"warning":  -1,
	"notice":   0,
	"info":     1,
	"debug":    2,
}

// Verbosity returns the commonlog verbosity of a level name.
func Verbosity(level string) (int, error) {
	v, ok := verbosities[level]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", level)
	}
	return v, nil
}

// Configure sets the global log level and destination. An empty path logs
// to stderr.
func Configure(level, path string) error {
	verbosity, err := Verbosity(level)
	if err != nil {
		return err
	}

	if path == "" {
		commonlog.Configure(verbosity, nil)
	} else {
		commonlog.Configure(verbosity, &path)
	}
	return nil
}
