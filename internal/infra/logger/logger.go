package logger

import "go.uber.org/zap"

// New returns the process logger: human-oriented development output in
// debug mode, JSON production output otherwise.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
