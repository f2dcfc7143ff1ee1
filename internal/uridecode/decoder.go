package uridecode

import (
	"bytes"

	"github.com/indigo-web/fileserve/http/status"
)

var hexLUT = [256]byte{
	'0': 1, '1': 2, '2': 3, '3': 4, '4': 5, '5': 6, '6': 7, '7': 8,
	'8': 9, '9': 10, 'a': 11, 'b': 12, 'c': 13, 'd': 14, 'e': 15, 'f': 16,
	'A': 11, 'B': 12, 'C': 13, 'D': 14, 'E': 15, 'F': 16,
}

// unhex returns the character value + 1 if the character is a valid hex digit,
// and 0 otherwise
func unhex(char byte) byte {
	return hexLUT[char]
}

// Decode normalizes the URI by translating escaped sequences into their
// true form. The buff is used only if there is at least one sequence to decode
func Decode(src, buff []byte) ([]byte, error) {
	for i := bytes.IndexByte(src, '%'); i != -1; i = bytes.IndexByte(src, '%') {
		if i >= len(src)-2 {
			return nil, status.ErrURLDecoding
		}

		hi, lo := unhex(src[i+1]), unhex(src[i+2])
		if hi == 0 || lo == 0 {
			return nil, status.ErrURLDecoding
		}

		buff = append(buff, src[:i]...)
		buff = append(buff, (hi-1)<<4|(lo-1))
		src = src[i+3:]
	}

	if len(buff) == 0 {
		return src, nil
	}

	return append(buff, src...), nil
}
