// ABOUTME: CSI and SS3 key sequences, including the xterm "1;<mod>" modifier form
// ABOUTME: SequenceLen finds where one escape sequence ends in partially read input

package key

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxSequence is the longest escape sequence the reader waits for.
const maxSequence = 32

var cursorFinals = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var tildeCodes = map[int]KeyType{
	1: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
	7: KeyHome,
	8: KeyEnd,
}

// parseCSIKey decodes ESC [ ... and ESC O ... key sequences.
func parseCSIKey(data string) (Key, bool) {
	if len(data) < 3 {
		return Key{}, false
	}
	intro, body, final := data[1], data[2:len(data)-1], data[len(data)-1]

	if intro == 'O' {
		t, ok := cursorFinals[final]
		return Key{Type: t}, ok && len(data) == 3
	}
	if intro != '[' {
		return Key{}, false
	}
	if final == 'Z' && body == "" {
		return Key{Type: KeyBackTab, Shift: true}, true
	}

	params := strings.Split(body, ";")
	if len(params) > 2 {
		return Key{}, false
	}

	var k Key
	if final == '~' {
		n, err := strconv.Atoi(params[0])
		t, ok := tildeCodes[n]
		if err != nil || !ok {
			return Key{}, false
		}
		k.Type = t
	} else {
		t, ok := cursorFinals[final]
		if !ok || (params[0] != "" && params[0] != "1") {
			return Key{}, false
		}
		k.Type = t
	}

	if len(params) == 2 {
		mod, err := strconv.Atoi(params[1])
		if err != nil || mod < 1 {
			return Key{}, false
		}
		bits := mod - 1
		k.Shift = bits&1 != 0
		k.Alt = bits&2 != 0
		k.Ctrl = bits&4 != 0
	}
	return k, true
}

// SequenceLen returns the byte length of the escape sequence at the start
// of data, or 0 when more input is needed to know. data must start with ESC.
func SequenceLen(data string) int {
	if len(data) < 2 {
		return 0
	}
	switch data[1] {
	case '[':
		// Linux console function keys: ESC [ [ A through ESC [ [ E.
		if len(data) > 2 && data[2] == '[' {
			if len(data) < 4 {
				return 0
			}
			return 4
		}
		for i := 2; i < len(data); i++ {
			if c := data[i]; c >= 0x40 && c <= 0x7e {
				return i + 1
			}
		}
		return 0
	case 'O':
		if len(data) < 3 {
			return 0
		}
		return 3
	}
	if !utf8.FullRuneInString(data[1:]) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(data[1:])
	return 1 + size
}

// Stale reports whether an unfinished sequence has grown too long to be one.
func Stale(data string) bool {
	return len(data) >= maxSequence
}
