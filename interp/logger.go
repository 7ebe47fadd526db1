package interp

import "github.com/sirupsen/logrus"

// logger is a side channel only: it never influences the returned output or
// Findings value, it just gives operators tailing process logs a way to
// notice a dangerous lookup without re-deriving it from Findings themselves.
// Swap it out (e.g. in a CLI entry point) with SetLogger.
var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the package's structured logging side channel. Passing
// nil restores the standard logrus logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		logger = logrus.StandardLogger()
		return
	}
	logger = l
}
