package proto

import (
	"strings"
	"unicode/utf8"
)

// LogLinePayload encodes a MsgLogLine payload of at most max bytes.
//
// Trailing line breaks are dropped and long lines are cut at a rune boundary.
func LogLinePayload(line string, max int) []byte {
	line = strings.TrimRight(line, "\r\n")
	if max >= 0 && len(line) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut]
	}
	return []byte(line)
}

// DecodeLogLine returns the text of a MsgLogLine payload with invalid UTF-8 replaced.
func DecodeLogLine(payload []byte) string {
	if utf8.Valid(payload) {
		return string(payload)
	}
	return strings.ToValidUTF8(string(payload), "?")
}
