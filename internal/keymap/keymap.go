// Package keymap holds the host keyboard layout for the 16-key keypad.
//
// The keypad's 4x4 grid
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
//
// sits on the left block of a QWERTY keyboard: 1234 / QWER / ASDF / ZXCV.
package keymap

import "unicode"

// Host lists, for each keypad key 0x0-0xF, the host key that drives it.
var Host = [16]rune{
	0x1: '1', 0x2: '2', 0x3: '3', 0xC: '4',
	0x4: 'q', 0x5: 'w', 0x6: 'e', 0xD: 'r',
	0x7: 'a', 0x8: 's', 0x9: 'd', 0xE: 'f',
	0xA: 'z', 0x0: 'x', 0xB: 'c', 0xF: 'v',
}

var byRune = func() map[rune]int {
	m := make(map[rune]int, len(Host))
	for k, r := range Host {
		m[r] = k
	}
	return m
}()

// Key returns the keypad key driven by host key r. Letters match in
// either case.
func Key(r rune) (int, bool) {
	k, ok := byRune[unicode.ToLower(r)]
	return k, ok
}

// Label is the keypad legend for key k as shown on the original hardware.
func Label(k int) string {
	const hex = "0123456789ABCDEF"
	if k < 0 || k > 0xF {
		return "?"
	}
	return hex[k : k+1]
}
