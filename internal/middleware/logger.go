package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// Logger logs every incoming update at debug level. Useful when
// diagnosing why a reply did not resolve a pending question.
func Logger(log *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			u := c.Update()
			fields := []zap.Field{zap.Int("update_id", u.ID)}
			if m := c.Message(); m != nil && m.Chat != nil {
				fields = append(fields,
					zap.Int64("chat_id", m.Chat.ID),
					zap.String("text", m.Text))
			}
			if cb := c.Callback(); cb != nil {
				fields = append(fields, zap.String("callback_data", cb.Data))
			}
			log.Debug("update received", fields...)
			return next(c)
		}
	}
}
