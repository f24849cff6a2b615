// Package moderation masks listed words in outbound messages before they
// leave the client. Matching runs on a folded view of the text (lower-cased,
// leet substitutions undone, separators dropped) so trivial obfuscation does
// not defeat the list; masking touches only the runes that belong to the
// matched word, so punctuation and spacing stay visible.
package moderation

import (
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// leet maps the usual substitution characters back to the letter they stand
// in for, so "b4dw0rd" folds to the same pattern as "badword".
var leet = map[rune]rune{
	'4': 'a', '@': 'a',
	'3': 'e', '€': 'e',
	'1': 'i', '!': 'i', '|': 'i',
	'0': 'o',
	'5': 's', '$': 's',
}

type Filter struct {
	machine *goahocorasick.Machine
	mask    rune
}

// NewFilter builds the Aho-Corasick automaton over the folded word list.
// Blank entries are skipped, so a trailing comma in the configured list is
// harmless; an effectively empty list yields a filter that passes everything
// through.
func NewFilter(words []string, mask rune) (Filter, error) {
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		folded, _ := foldText(strings.TrimSpace(word))
		if len(folded) == 0 {
			continue
		}
		patterns = append(patterns, folded)
	}
	if len(patterns) == 0 {
		return Filter{mask: mask}, nil
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return Filter{}, err
	}
	return Filter{machine: machine, mask: mask}, nil
}

// Apply returns the message with every listed word masked.
func (f *Filter) Apply(message string) string {
	if f.machine == nil {
		return message
	}
	folded, origin := foldText(message)
	if len(folded) == 0 {
		return message
	}
	matches := f.machine.MultiPatternSearch(folded, false)
	if len(matches) == 0 {
		return message
	}

	out := []rune(message)
	for _, match := range matches {
		end := match.Pos + len(match.Word)
		if match.Pos < 0 || end > len(origin) {
			continue
		}
		for i := match.Pos; i < end; i++ {
			out[origin[i]] = f.mask
		}
	}
	return string(out)
}

// foldText produces the searchable view of the text plus, for each folded
// rune, the index of the original rune it came from. Runes that fold to
// neither a letter nor a digit carry no signal and are dropped.
func foldText(text string) ([]rune, []int) {
	runes := []rune(text)
	folded := make([]rune, 0, len(runes))
	origin := make([]int, 0, len(runes))
	for i, r := range runes {
		fr, ok := foldRune(r)
		if !ok {
			continue
		}
		folded = append(folded, fr)
		origin = append(origin, i)
	}
	return folded, origin
}

func foldRune(r rune) (rune, bool) {
	if sub, ok := leet[r]; ok {
		return sub, true
	}
	r = unicode.ToLower(r)
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return r, true
	}
	return 0, false
}
