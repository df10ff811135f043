package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"trail/hal"
)

// showFault logs v and puts it on the character display with the indicator
// off. The exhibit is halted by the caller afterwards.
func showFault(h hal.HAL, v any) {
	msg := fmt.Sprint(v)
	rows := wrapRunes(msg, hal.CharColumns)

	if l := h.Logger(); l != nil {
		l.WriteLineString("trail fault: " + msg)
	}
	if ind := h.Indicator(); ind != nil {
		ind.SetActive(false)
	}
	if num := h.NumericDisplay(); num != nil {
		num.ShowDecimal(0)
	}

	lcd := h.CharDisplay()
	if lcd == nil {
		return
	}
	lcd.Clear()
	lcd.SetCursor(0, 0)
	lcd.Print("FAULT")
	if len(rows) > 0 {
		lcd.SetCursor(0, 1)
		lcd.Print(rows[0])
	}
}

// wrapRunes splits s into chunks of at most n runes, dropping the spaces
// a break lands on.
func wrapRunes(s string, n int) []string {
	var out []string
	for s != "" {
		chunk, rest := takeRunes(s, n)
		out = append(out, chunk)
		s = strings.TrimLeft(rest, " ")
	}
	return out
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
