// Package gui provides the fyne desktop typing window. Everything but the
// display grouping requires the gui build tag.
package gui

import "github.com/verte-zerg/wps/internal/session"

// Kind is how a stretch of the target is drawn.
type Kind int

const (
	KindPending Kind = iota
	KindCurrent
	KindPlaceholder
	KindCorrect
	KindIncorrect
)

// Run is a maximal stretch of target runes drawn the same way.
type Run struct {
	Text   string
	Kind   Kind
	Cursor bool
}

// Runs groups the target into display runs. The cursor rune always gets a
// run of its own.
func Runs(target []rune, classes []session.Class, placeholder rune) []Run {
	cursor := -1
	for i, c := range classes {
		if c == session.Cursor {
			cursor = i
			break
		}
	}
	wordStart, wordEnd := currentWord(target, placeholder, cursor)

	var out []Run
	var buf []rune
	var kind Kind
	flush := func() {
		if len(buf) > 0 {
			out = append(out, Run{Text: string(buf), Kind: kind})
			buf = buf[:0]
		}
	}
	for i, r := range target {
		class := session.Pending
		if i < len(classes) {
			class = classes[i]
		}
		k := KindPending
		switch {
		case class == session.Correct:
			k = KindCorrect
		case class == session.Incorrect:
			k = KindIncorrect
		case r == placeholder:
			k = KindPlaceholder
		case i >= wordStart && i < wordEnd:
			k = KindCurrent
		}
		if i == cursor {
			flush()
			out = append(out, Run{Text: string(r), Kind: k, Cursor: true})
			continue
		}
		if k != kind {
			flush()
			kind = k
		}
		buf = append(buf, r)
	}
	flush()
	return out
}

func currentWord(target []rune, placeholder rune, cursor int) (int, int) {
	if cursor < 0 {
		return -1, -1
	}
	start := cursor
	for start < len(target) && target[start] == placeholder {
		start++
	}
	end := start
	for end < len(target) && target[end] != placeholder {
		end++
	}
	return start, end
}
