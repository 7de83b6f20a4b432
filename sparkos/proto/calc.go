package proto

import "encoding/binary"

// CalcResultPayload encodes a MsgCalcResult payload.
//
// Layout (little-endian):
//   - u16: expression length
//   - bytes: expression
//   - bytes: formatted result (rest of payload)
//
// The result must fit a single message; callers truncate the expression first.
func CalcResultPayload(expr, result string) []byte {
	buf := make([]byte, 2+len(expr)+len(result))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(expr)))
	copy(buf[2:], expr)
	copy(buf[2+len(expr):], result)
	return buf
}

// DecodeCalcResultPayload decodes a CalcResultPayload.
func DecodeCalcResultPayload(payload []byte) (expr, result string, ok bool) {
	if len(payload) < 2 {
		return "", "", false
	}
	n := int(binary.LittleEndian.Uint16(payload[0:2]))
	if 2+n > len(payload) {
		return "", "", false
	}
	return string(payload[2 : 2+n]), string(payload[2+n:]), true
}
