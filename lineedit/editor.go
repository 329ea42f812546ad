// Package lineedit provides a simple line editor with emacs-style keybindings.
package lineedit

import (
	"strings"
	"unicode"
)

// editorState represents a snapshot of editor state for undo.
type editorState struct {
	text   []rune
	cursor int
}

// Editor is a single-line text editor with cursor tracking. Positions count
// runes, not bytes.
type Editor struct {
	text    []rune
	cursor  int
	maxLen  int           // 0 = unlimited
	history []editorState // Undo history stack
}

// New creates a new empty Editor holding at most maxLen runes. Zero means
// no limit.
func New(maxLen int) *Editor {
	return &Editor{maxLen: maxLen}
}

// Text returns the current text.
func (e *Editor) Text() string {
	return string(e.text)
}

// Len returns the length of the text in runes.
func (e *Editor) Len() int {
	return len(e.text)
}

// SaveState saves the current state to the undo history.
// Call this before making changes that should be undoable.
func (e *Editor) SaveState() {
	if len(e.history) > 0 {
		last := e.history[len(e.history)-1]
		if last.cursor == e.cursor && string(last.text) == string(e.text) {
			return
		}
	}
	e.history = append(e.history, editorState{
		text:   append([]rune(nil), e.text...),
		cursor: e.cursor,
	})
}

// Undo restores the previous state from the undo history.
// Returns true if undo was performed, false if history is empty.
func (e *Editor) Undo() bool {
	if len(e.history) == 0 {
		return false
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.text = last.text
	e.cursor = last.cursor
	return true
}

// BeforeCursor returns text before the cursor.
func (e *Editor) BeforeCursor() string {
	return string(e.text[:e.cursor])
}

// AfterCursor returns text from cursor to end.
func (e *Editor) AfterCursor() string {
	return string(e.text[e.cursor:])
}

// Display returns the text as it should be shown. Masked text is replaced
// rune for rune with '*'.
func (e *Editor) Display(masked bool) (before, after string) {
	if !masked {
		return e.BeforeCursor(), e.AfterCursor()
	}
	return strings.Repeat("*", e.cursor), strings.Repeat("*", len(e.text)-e.cursor)
}

// Insert adds a rune at the cursor position. It reports false when the
// editor is full.
func (e *Editor) Insert(r rune) bool {
	if e.maxLen > 0 && len(e.text) >= e.maxLen {
		return false
	}
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = r
	e.cursor++
	return true
}

// InsertString adds a string at the cursor position, stopping when the
// editor is full.
func (e *Editor) InsertString(s string) {
	for _, r := range s {
		if !e.Insert(r) {
			return
		}
	}
}

// DeleteBackward removes the character before the cursor (backspace).
// Returns true if a character was deleted.
func (e *Editor) DeleteBackward() bool {
	if e.cursor == 0 {
		return false
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
	return true
}

// DeleteForward removes the character at the cursor (delete).
// Returns true if a character was deleted.
func (e *Editor) DeleteForward() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
	return true
}

// Left moves cursor one character left.
// Returns true if cursor moved.
func (e *Editor) Left() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	return true
}

// Right moves cursor one character right.
// Returns true if cursor moved.
func (e *Editor) Right() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.cursor++
	return true
}

// Home moves cursor to beginning of line.
func (e *Editor) Home() {
	e.cursor = 0
}

// End moves cursor to end of line.
func (e *Editor) End() {
	e.cursor = len(e.text)
}

// charClass returns the class of a character for word motion purposes.
// 0 = whitespace, 1 = word char, 2 = punctuation/other
func charClass(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return 1
	}
	return 2
}

// wordBoundaryLeft finds the start of the word before the cursor.
func (e *Editor) wordBoundaryLeft() int {
	i := e.cursor
	for i > 0 && charClass(e.text[i-1]) == 0 {
		i--
	}
	if i == 0 {
		return 0
	}
	class := charClass(e.text[i-1])
	for i > 0 && charClass(e.text[i-1]) == class {
		i--
	}
	return i
}

// wordBoundaryRight finds the end of the word after the cursor.
func (e *Editor) wordBoundaryRight() int {
	i := e.cursor
	for i < len(e.text) && charClass(e.text[i]) == 0 {
		i++
	}
	if i >= len(e.text) {
		return len(e.text)
	}
	class := charClass(e.text[i])
	for i < len(e.text) && charClass(e.text[i]) == class {
		i++
	}
	return i
}

// WordLeft moves cursor to the start of the previous word.
func (e *Editor) WordLeft() {
	e.cursor = e.wordBoundaryLeft()
}

// WordRight moves cursor past the end of the next word.
func (e *Editor) WordRight() {
	e.cursor = e.wordBoundaryRight()
}

// DeleteWordBackward deletes from the start of the previous word to the cursor.
func (e *Editor) DeleteWordBackward() {
	start := e.wordBoundaryLeft()
	e.text = append(e.text[:start], e.text[e.cursor:]...)
	e.cursor = start
}

// DeleteWordForward deletes from the cursor to the end of the next word.
func (e *Editor) DeleteWordForward() {
	end := e.wordBoundaryRight()
	e.text = append(e.text[:e.cursor], e.text[end:]...)
}

// KillToEnd deletes from cursor to end of line.
func (e *Editor) KillToEnd() {
	e.text = e.text[:e.cursor]
}

// KillToStart deletes from start of line to cursor.
func (e *Editor) KillToStart() {
	e.text = e.text[e.cursor:]
	e.cursor = 0
}

// Transpose swaps the two characters before the cursor, or around it when
// the cursor is mid-line.
func (e *Editor) Transpose() {
	if len(e.text) < 2 || e.cursor == 0 {
		return
	}
	i := e.cursor
	if i >= len(e.text) {
		i = len(e.text) - 1
	}
	e.text[i-1], e.text[i] = e.text[i], e.text[i-1]
	e.cursor = min(i+1, len(e.text))
}
