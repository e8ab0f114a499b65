// Package buffer implements the editable text model behind each editor tab:
// lines of runes, a cursor, an optional selection, undo/redo history, a yank
// register and literal forward search.
package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxHistory bounds the undo stack.
const MaxHistory = 1000

// MaxHistoryBytes bounds the text retained by the undo stack.
const MaxHistoryBytes = 4 << 20

// Pos is a cursor position. Col counts runes, not bytes.
type Pos struct {
	Row, Col int
}

// Before reports whether p sorts before q.
func (p Pos) Before(q Pos) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

// Move is a cursor motion.
type Move int

const (
	Left Move = iota
	Right
	Up
	Down
	Home
	End
	WordLeft
	WordRight
	Top
	Bottom
)

// edit is one undoable change: removed was replaced by inserted at at.
type edit struct {
	at       Pos
	removed  string
	inserted string
	before   Pos
	after    Pos
}

func (e edit) size() int {
	return len(e.removed) + len(e.inserted)
}

// Buffer is a multi-line text buffer. It is not safe for concurrent use.
type Buffer struct {
	lines  [][]rune
	cursor Pos
	anchor Pos
	marked bool

	undo         []edit
	redo         []edit
	historyBytes int
	typing       bool // last edit was a typed rune; consecutive runes share one undo step
	yank         string
}

// New returns a buffer holding text with the cursor at the top.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// SetText replaces the contents and clears history and selection.
func (b *Buffer) SetText(text string) {
	b.lines = split(text)
	b.cursor = Pos{}
	b.marked = false
	b.typing = false
	b.undo = nil
	b.redo = nil
	b.historyBytes = 0
}

func split(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

// Text returns the buffer contents joined with "\n".
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// Lines returns a copy of every line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// LineCount returns the number of lines, which is never less than one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Pos {
	return b.cursor
}

// Yank returns the last copied or cut text.
func (b *Buffer) Yank() string {
	return b.yank
}

// Selection returns the ordered bounds of the active selection.
func (b *Buffer) Selection() (start, end Pos, ok bool) {
	if !b.marked || b.anchor == b.cursor {
		return Pos{}, Pos{}, false
	}
	if b.anchor.Before(b.cursor) {
		return b.anchor, b.cursor, true
	}
	return b.cursor, b.anchor, true
}

// ClearSelection drops the selection without moving the cursor.
func (b *Buffer) ClearSelection() {
	b.marked = false
}

// MoveCursor applies m and clears any selection.
func (b *Buffer) MoveCursor(m Move) {
	b.marked = false
	b.move(m)
}

// SelectMove applies m while extending the selection from the current
// anchor, starting one at the cursor if none is active.
func (b *Buffer) SelectMove(m Move) {
	if !b.marked {
		b.anchor = b.cursor
		b.marked = true
	}
	b.move(m)
}

// SelectAll selects the whole buffer.
func (b *Buffer) SelectAll() {
	b.anchor = Pos{}
	b.marked = true
	last := len(b.lines) - 1
	b.cursor = Pos{Row: last, Col: len(b.lines[last])}
}

func (b *Buffer) move(m Move) {
	b.typing = false
	c := &b.cursor
	switch m {
	case Left:
		if c.Col > 0 {
			c.Col--
		} else if c.Row > 0 {
			c.Row--
			c.Col = len(b.lines[c.Row])
		}
	case Right:
		if c.Col < len(b.lines[c.Row]) {
			c.Col++
		} else if c.Row < len(b.lines)-1 {
			c.Row++
			c.Col = 0
		}
	case Up:
		if c.Row > 0 {
			c.Row--
			c.Col = min(c.Col, len(b.lines[c.Row]))
		}
	case Down:
		if c.Row < len(b.lines)-1 {
			c.Row++
			c.Col = min(c.Col, len(b.lines[c.Row]))
		}
	case Home:
		c.Col = 0
	case End:
		c.Col = len(b.lines[c.Row])
	case WordLeft:
		*c = b.wordLeft(*c)
	case WordRight:
		*c = b.wordRight(*c)
	case Top:
		*c = Pos{}
	case Bottom:
		last := len(b.lines) - 1
		*c = Pos{Row: last, Col: len(b.lines[last])}
	}
}

func (b *Buffer) wordLeft(p Pos) Pos {
	if p.Col == 0 {
		if p.Row == 0 {
			return p
		}
		return Pos{Row: p.Row - 1, Col: len(b.lines[p.Row-1])}
	}
	line := b.lines[p.Row]
	col := p.Col
	for col > 0 && unicode.IsSpace(line[col-1]) {
		col--
	}
	for col > 0 && !unicode.IsSpace(line[col-1]) {
		col--
	}
	return Pos{Row: p.Row, Col: col}
}

func (b *Buffer) wordRight(p Pos) Pos {
	line := b.lines[p.Row]
	if p.Col >= len(line) {
		if p.Row == len(b.lines)-1 {
			return p
		}
		return Pos{Row: p.Row + 1}
	}
	col := p.Col
	for col < len(line) && !unicode.IsSpace(line[col]) {
		col++
	}
	for col < len(line) && unicode.IsSpace(line[col]) {
		col++
	}
	return Pos{Row: p.Row, Col: col}
}

// InsertRune types r at the cursor, replacing any selection.
func (b *Buffer) InsertRune(r rune) {
	if r == '\n' {
		b.InsertNewline()
		return
	}
	_, _, sel := b.Selection()
	if !sel && b.typing && !unicode.IsSpace(r) && len(b.undo) > 0 {
		if last := &b.undo[len(b.undo)-1]; last.after == b.cursor {
			b.cursor = b.splice(b.cursor, b.cursor, string(r))
			last.inserted += string(r)
			last.after = b.cursor
			b.historyBytes += utf8.RuneLen(r)
			b.trimHistory()
			return
		}
	}
	start, end := b.target()
	b.replace(start, end, string(r))
	b.typing = true
}

// InsertNewline splits the current line at the cursor.
func (b *Buffer) InsertNewline() {
	start, end := b.target()
	b.replace(start, end, "\n")
}

// InsertString inserts s at the cursor, replacing any selection. Newlines
// split lines. CRLF pairs are folded to LF.
func (b *Buffer) InsertString(s string) {
	if s == "" {
		return
	}
	start, end := b.target()
	b.replace(start, end, strings.ReplaceAll(s, "\r\n", "\n"))
}

// Backspace deletes the selection, or the rune before the cursor.
func (b *Buffer) Backspace() bool {
	if start, end, ok := b.Selection(); ok {
		b.replace(start, end, "")
		return true
	}
	if b.cursor == (Pos{}) {
		return false
	}
	end := b.cursor
	b.move(Left)
	start := b.cursor
	b.cursor = end
	b.replace(start, end, "")
	return true
}

// Delete deletes the selection, or the rune under the cursor.
func (b *Buffer) Delete() bool {
	if start, end, ok := b.Selection(); ok {
		b.replace(start, end, "")
		return true
	}
	end := b.cursor
	if end.Col < len(b.lines[end.Row]) {
		end.Col++
	} else if end.Row < len(b.lines)-1 {
		end = Pos{Row: end.Row + 1}
	} else {
		return false
	}
	b.replace(b.cursor, end, "")
	return true
}

// DeleteWord deletes from the start of the previous word to the cursor.
func (b *Buffer) DeleteWord() bool {
	if _, _, ok := b.Selection(); ok {
		return b.Backspace()
	}
	start := b.wordLeft(b.cursor)
	if start == b.cursor {
		return false
	}
	b.replace(start, b.cursor, "")
	return true
}

// Copy stores the selected text in the yank register and returns it. With
// no selection nothing changes and "" is returned.
func (b *Buffer) Copy() string {
	start, end, ok := b.Selection()
	if !ok {
		return ""
	}
	b.yank = b.textRange(start, end)
	return b.yank
}

// Cut is Copy followed by deleting the selection.
func (b *Buffer) Cut() string {
	text := b.Copy()
	if text == "" {
		return ""
	}
	start, end, _ := b.Selection()
	b.replace(start, end, "")
	return text
}

// Paste inserts text, or the yank register when text is empty.
func (b *Buffer) Paste(text string) bool {
	if text == "" {
		text = b.yank
	}
	if text == "" {
		return false
	}
	b.InsertString(text)
	return true
}

// AppendText adds text at the end of the buffer on a fresh line and moves
// the cursor to the end.
func (b *Buffer) AppendText(text string) {
	if text == "" {
		return
	}
	last := len(b.lines) - 1
	end := Pos{Row: last, Col: len(b.lines[last])}
	if end.Col > 0 {
		text = "\n" + text
	}
	b.replace(end, end, text)
}

// ReplaceLine overwrites line i. Out-of-range indexes are ignored.
func (b *Buffer) ReplaceLine(i int, text string) bool {
	if i < 0 || i >= len(b.lines) {
		return false
	}
	cursor := b.cursor
	b.replace(Pos{Row: i}, Pos{Row: i, Col: len(b.lines[i])}, text)
	if cursor.Row == i {
		cursor.Col = min(cursor.Col, len(b.lines[i]))
	}
	b.cursor = cursor
	b.undo[len(b.undo)-1].after = cursor
	return true
}

// Undo reverts the last edit.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	e := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.historyBytes -= e.size()
	b.splice(e.at, advance(e.at, e.inserted), e.removed)
	b.cursor = e.before
	b.marked = false
	b.typing = false
	b.redo = append(b.redo, e)
	return true
}

// Redo re-applies the last undone edit.
func (b *Buffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	e := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	b.splice(e.at, advance(e.at, e.removed), e.inserted)
	b.cursor = e.after
	b.marked = false
	b.typing = false
	b.undo = append(b.undo, e)
	b.historyBytes += e.size()
	b.trimHistory()
	return true
}

// SearchForward moves the cursor to the next literal occurrence of pattern,
// wrapping past the end. With matchCursor an occurrence starting at the
// cursor counts; otherwise the search starts one rune later.
func (b *Buffer) SearchForward(pattern string, matchCursor bool) bool {
	if pattern == "" {
		return false
	}
	pat := []rune(pattern)
	start := b.cursor
	from := start.Col
	if !matchCursor {
		from++
	}
	n := len(b.lines)
	for i := 0; i <= n; i++ {
		row := (start.Row + i) % n
		col := 0
		if i == 0 {
			col = from
		}
		idx := indexRunes(b.lines[row], pat, col)
		if idx < 0 || (i == n && idx > start.Col) {
			continue
		}
		b.marked = false
		b.typing = false
		b.cursor = Pos{Row: row, Col: idx}
		return true
	}
	return false
}

func indexRunes(line, pat []rune, from int) int {
	for i := from; i+len(pat) <= len(line); i++ {
		match := true
		for j, r := range pat {
			if line[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// target returns the selection bounds, or an empty range at the cursor.
func (b *Buffer) target() (Pos, Pos) {
	if start, end, ok := b.Selection(); ok {
		return start, end
	}
	return b.cursor, b.cursor
}

// replace swaps [start, end) for text, records the change for Undo and
// leaves the cursor after the inserted text.
func (b *Buffer) replace(start, end Pos, text string) {
	e := edit{at: start, removed: b.textRange(start, end), inserted: text, before: b.cursor}
	b.marked = false
	b.cursor = b.splice(start, end, text)
	e.after = b.cursor
	b.undo = append(b.undo, e)
	b.historyBytes += e.size()
	b.trimHistory()
	b.redo = nil
	b.typing = false
}

// splice swaps [start, end) for text without touching history and returns
// the position just past the inserted text.
func (b *Buffer) splice(start, end Pos, text string) Pos {
	parts := split(text)
	last := len(parts) - 1
	head := b.lines[start.Row][:start.Col]
	tail := b.lines[end.Row][end.Col:]

	first := make([]rune, 0, len(head)+len(parts[0])+len(tail))
	first = append(append(first, head...), parts[0]...)
	if last == 0 {
		first = append(first, tail...)
	}
	if last == 0 && start.Row == end.Row {
		b.lines[start.Row] = first
		return Pos{Row: start.Row, Col: start.Col + len(parts[0])}
	}

	rest := b.lines[end.Row+1:]
	lines := make([][]rune, 0, start.Row+len(parts)+len(rest))
	lines = append(lines, b.lines[:start.Row]...)
	lines = append(lines, first)
	if last > 0 {
		lines = append(lines, parts[1:last]...)
		lines = append(lines, append(parts[last], tail...))
	}
	b.lines = append(lines, rest...)
	if last == 0 {
		return Pos{Row: start.Row, Col: start.Col + len(parts[0])}
	}
	return Pos{Row: start.Row + last, Col: len(parts[last])}
}

// advance returns the position reached by walking text from p.
func advance(p Pos, text string) Pos {
	i := strings.LastIndexByte(text, '\n')
	if i < 0 {
		return Pos{Row: p.Row, Col: p.Col + utf8.RuneCountInString(text)}
	}
	return Pos{Row: p.Row + strings.Count(text, "\n"), Col: utf8.RuneCountInString(text[i+1:])}
}

func (b *Buffer) textRange(start, end Pos) string {
	if start.Row == end.Row {
		return string(b.lines[start.Row][start.Col:end.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Row][start.Col:]))
	for r := start.Row + 1; r < end.Row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[r]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Row][:end.Col]))
	return sb.String()
}

// trimHistory drops the oldest undo entries until both bounds hold. The
// newest entry always survives.
func (b *Buffer) trimHistory() {
	drop := 0
	for len(b.undo)-drop > 1 && (len(b.undo)-drop > MaxHistory || b.historyBytes > MaxHistoryBytes) {
		b.historyBytes -= b.undo[drop].size()
		drop++
	}
	clear(b.undo[:drop])
	b.undo = b.undo[drop:]
}
