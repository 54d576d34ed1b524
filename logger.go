// logger.go
package naco

import (
	"github.com/baditaflorin/go_naco/internal/adapters/logger"
	"github.com/baditaflorin/l"
)

// NewDefaultLogger creates the text logger used by the examples: stdout,
// asynchronous writes, source locations.
func NewDefaultLogger() (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(logger.DefaultConfig(logger.Options{Async: true}))
}
