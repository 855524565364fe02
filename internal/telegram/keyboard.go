package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"calcpad/internal/calculator"
	"calcpad/internal/keypad"
)

// keyboard is the inline keypad attached to every calculator message. The
// callback data of a button is its label.
var keyboard = newKeyboard()

func newKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keypad.Layout))
	for _, row := range keypad.Layout {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Label))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderText is the message body for s: the pending operation, if any, above
// the current value.
func renderText(s calculator.State) string {
	d := calculator.Render(s)
	if prev := keypad.PreviousLine(d); prev != "" {
		return strings.Join([]string{prev, d.Current}, "\n")
	}
	return d.Current
}
