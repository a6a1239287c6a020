package client

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/agentloop/consult/internal/question"
)

// answerUnique routes button taps for every question kind to the
// client's callback handler.
const answerUnique = "consult_answer"

const defaultColumns = 4

// renderPrompt formats the message body for a question. Choice
// questions list their options as "LABEL) text" lines under the
// prompt; buttons carry only the label.
func renderPrompt(q *question.Question) string {
	if q.Kind != question.Choice {
		return q.Prompt
	}
	var b strings.Builder
	b.WriteString(q.Prompt)
	b.WriteString("\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "\n%s) %s", question.Label(i), opt)
	}
	return b.String()
}

// renderKeyboard builds the inline keyboard for a question, or nil
// when the kind takes free-text replies only.
func renderKeyboard(q *question.Question) *tele.ReplyMarkup {
	switch q.Kind {
	case question.Confirm:
		return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{{
			{Unique: answerUnique, Text: "Yes", Data: callbackData(q, 1)},
			{Unique: answerUnique, Text: "No", Data: callbackData(q, 0)},
		}}}
	case question.Choice:
		columns := q.Columns
		if columns < 1 {
			columns = defaultColumns
		}
		rm := &tele.ReplyMarkup{}
		var row []tele.InlineButton
		for i := range q.Options {
			row = append(row, tele.InlineButton{
				Unique: answerUnique,
				Text:   question.Label(i),
				Data:   callbackData(q, i),
			})
			if len(row) == columns {
				rm.InlineKeyboard = append(rm.InlineKeyboard, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rm.InlineKeyboard = append(rm.InlineKeyboard, row)
		}
		return rm
	}
	return nil
}

// callbackData encodes the question ID and option index into the
// button payload, "<uuid>_<index>".
func callbackData(q *question.Question, index int) string {
	return fmt.Sprintf("%s_%d", q.ID, index)
}

// parseCallback decodes a button payload. Telegram clients sometimes
// smuggle a form feed into callback data, so it is stripped before
// parsing.
func parseCallback(data string) (id string, index int, ok bool) {
	cleaned := strings.TrimSpace(data)
	cleaned = strings.ReplaceAll(cleaned, "\f", "")
	sep := strings.LastIndex(cleaned, "_")
	if sep <= 0 || sep == len(cleaned)-1 {
		return "", 0, false
	}
	index, err := strconv.Atoi(cleaned[sep+1:])
	if err != nil {
		return "", 0, false
	}
	return cleaned[:sep], index, true
}
