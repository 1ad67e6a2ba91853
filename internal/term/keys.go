package term

import "github.com/FabianRolfMatthiasNoll/chip8emu/internal/keymap"

// Terminals deliver key presses but never releases. Keys turns the stream
// of presses into keypad levels: a key stays down for hold frames after its
// last press, which covers the gap before the terminal's autorepeat kicks in.
type Keys struct {
	hold int
	left [16]int
}

func NewKeys(hold int) *Keys {
	if hold < 1 {
		hold = 1
	}
	return &Keys{hold: hold}
}

// Press marks keypad key k as down.
func (k *Keys) Press(key int) {
	if key >= 0 && key < len(k.left) {
		k.left[key] = k.hold
	}
}

// Frame returns the levels for the current frame and ages every key by one.
func (k *Keys) Frame() (down [16]bool) {
	for i, n := range k.left {
		if n > 0 {
			down[i] = true
			k.left[i] = n - 1
		}
	}
	return down
}

// Action is a host command decoded from terminal input.
type Action int

const (
	None Action = iota
	Quit
	Pause
	Reset
	VolumeUp
	VolumeDown
	StepFrame
)

// Event is one decoded input: either a keypad key or a host action.
type Event struct {
	Key    int // keypad key, or -1
	Action Action
}

// Decode splits a chunk of raw terminal bytes into events. Arrow keys
// arrive as ESC [ A / ESC [ B; a lone ESC quits.
func Decode(b []byte) []Event {
	var out []Event
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c == 0x1b:
			if i+2 < len(b) && b[i+1] == '[' {
				switch b[i+2] {
				case 'A':
					out = append(out, Event{Key: -1, Action: VolumeUp})
				case 'B':
					out = append(out, Event{Key: -1, Action: VolumeDown})
				}
				i += 2
				continue
			}
			out = append(out, Event{Key: -1, Action: Quit})
		case c == 0x03:
			out = append(out, Event{Key: -1, Action: Quit})
		case c == ' ':
			out = append(out, Event{Key: -1, Action: Pause})
		case c == '=':
			out = append(out, Event{Key: -1, Action: Reset})
		case c == 'n' || c == 'N':
			out = append(out, Event{Key: -1, Action: StepFrame})
		default:
			if k, ok := keymap.Key(rune(c)); ok {
				out = append(out, Event{Key: k, Action: None})
			}
		}
	}
	return out
}
