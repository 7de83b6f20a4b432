package proto

import "encoding/binary"

// PointerPayload encodes a MsgPointer payload.
//
// Layout (little-endian):
//   - i16: x (framebuffer pixels)
//   - i16: y (framebuffer pixels)
//   - u8:  pressed (1 = down, 0 = up)
func PointerPayload(x, y int, pressed bool) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(int16(clampI16(x))))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(int16(clampI16(y))))
	if pressed {
		buf[4] = 1
	}
	return buf
}

// DecodePointerPayload decodes a PointerPayload.
func DecodePointerPayload(payload []byte) (x, y int, pressed bool, ok bool) {
	if len(payload) < 5 {
		return 0, 0, false, false
	}
	x = int(int16(binary.LittleEndian.Uint16(payload[0:2])))
	y = int(int16(binary.LittleEndian.Uint16(payload[2:4])))
	return x, y, payload[4] != 0, true
}

func clampI16(v int) int {
	if v < -32768 {
		return -32768
	}
	if v > 32767 {
		return 32767
	}
	return v
}
