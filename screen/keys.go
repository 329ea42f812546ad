package screen

import "unicode/utf8"

// KeyCode identifies a decoded key press.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEscape
	KeyEnter
	KeyResize
)

// Key is one input event. Rune is set for KeyRune, including control
// characters such as Ctrl-K (11).
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns the key for a typed character.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Decode turns the bytes of a single terminal read into a key.
func Decode(buf []byte) Key {
	if len(buf) == 0 {
		return Key{}
	}

	if buf[0] == 27 {
		if len(buf) == 1 {
			return Key{Code: KeyEscape}
		}
		if len(buf) >= 3 && (buf[1] == '[' || buf[1] == 'O') {
			switch buf[2] {
			case 'A':
				return Key{Code: KeyUp}
			case 'B':
				return Key{Code: KeyDown}
			case 'C':
				return Key{Code: KeyRight}
			case 'D':
				return Key{Code: KeyLeft}
			case 'H':
				return Key{Code: KeyHome}
			case 'F':
				return Key{Code: KeyEnd}
			}
			// ESC [ n ~
			if len(buf) >= 4 && buf[3] == '~' {
				switch buf[2] {
				case '1', '7':
					return Key{Code: KeyHome}
				case '4', '8':
					return Key{Code: KeyEnd}
				case '5':
					return Key{Code: KeyPageUp}
				case '6':
					return Key{Code: KeyPageDown}
				}
			}
		}
		return Key{}
	}

	if buf[0] == 13 || buf[0] == 10 {
		return Key{Code: KeyEnter}
	}

	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return Key{}
	}
	return RuneKey(r)
}
