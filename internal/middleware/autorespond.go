package middleware

import (
	tele "gopkg.in/telebot.v4"
)

// AutoRespond answers every callback query after its handler runs so
// the tapped button stops showing a spinner, whether or not the tap
// matched a pending question.
func AutoRespond() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Callback() != nil {
				defer func() {
					_ = c.Respond()
				}()
			}
			return next(c)
		}
	}
}
