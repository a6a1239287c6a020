package middleware

import (
	"errors"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// Recover wraps a handler so a panic in it is converted to an error
// and logged instead of taking the update loop down.
func Recover(log *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = errors.New("unknown panic")
					}
					log.Error("recovered from panic in handler", zap.Error(err))
				}
			}()
			return next(c)
		}
	}
}
