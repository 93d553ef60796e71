package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wps/internal/session"
)

type role int

const (
	rolePending role = iota
	roleCurrentWord
	rolePlaceholder
	roleCorrect
	roleIncorrect
)

func (r role) style() lipgloss.Style {
	switch r {
	case roleCurrentWord:
		return currentWordStyle
	case rolePlaceholder:
		return placeholderStyle
	case roleCorrect:
		return correctStyle
	case roleIncorrect:
		return incorrectStyle
	default:
		return pendingStyle
	}
}

type styledRune struct {
	s       string
	role    role
	cursor  bool
	width   int
	isBreak bool
}

func buildStyledRunes(target []rune, classes []session.Class, placeholder rune) []styledRune {
	cursorIndex := -1
	for i, c := range classes {
		if c == session.Cursor {
			cursorIndex = i
			break
		}
	}
	currentWord := wordForCursor(findWords(target, placeholder), cursorIndex)

	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		class := session.Pending
		if i < len(classes) {
			class = classes[i]
		}
		var rl role
		switch {
		case class == session.Correct:
			rl = roleCorrect
		case class == session.Incorrect:
			rl = roleIncorrect
		case r == placeholder:
			rl = rolePlaceholder
		case currentWord != nil && i >= currentWord.start && i < currentWord.end:
			rl = roleCurrentWord
		default:
			rl = rolePending
		}
		style := rl.style()
		isCursor := class == session.Cursor
		if isCursor {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			role:    rl,
			cursor:  isCursor,
			width:   runewidth.RuneWidth(r),
			isBreak: r == placeholder,
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(target []rune, placeholder rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range target {
		if r == placeholder {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(target)})
	}
	return words
}

// wordForCursor returns the word holding the cursor, or the next word when
// the cursor sits on a placeholder. A cursor of -1 means the round is fully
// typed and no word is current.
func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 || cursorIndex < 0 {
		return nil
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines after the last placeholder that fits, so the
// placeholder stays visible at the end of the line.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastBreakIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastBreakIdx >= 0 && lastBreakIdx < len(line)-1 {
				out.WriteString(renderStyledRunes(line[:lastBreakIdx+1]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastBreakIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastBreakIdx = lastBreakIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastBreakIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isBreak {
			lastBreakIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastBreakIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isBreak {
			return i
		}
	}
	return -1
}
