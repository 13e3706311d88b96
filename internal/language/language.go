// Package language defines the closed set of display languages.
package language

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown reports a language code outside the supported set.
var ErrUnknown = errors.New("unknown language")

// Code identifies a display language.
type Code string

const (
	EN Code = "EN"
	ZH Code = "ZH"
)

// Default is used when no valid language has been stored.
const Default = EN

type info struct {
	name   string
	suffix string
}

var known = map[Code]info{
	EN: {name: "English", suffix: "en"},
	ZH: {name: "中文", suffix: "zh"},
}

// All returns the supported codes in display order.
func All() []Code {
	return []Code{EN, ZH}
}

// Parse accepts a code or its lowercase suffix, case-insensitively.
func Parse(s string) (Code, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	code := Code(norm)
	if _, ok := known[code]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w %q (supported: EN, ZH)", ErrUnknown, s)
}

// Valid reports whether c is a supported code.
func (c Code) Valid() bool {
	_, ok := known[c]
	return ok
}

// Name returns the language's own display name.
func (c Code) Name() string {
	return known[c].name
}

// Suffix returns the lowercase tag used for localized catalog fields.
func (c Code) Suffix() string {
	return known[c].suffix
}

// Next cycles through All, wrapping around.
func (c Code) Next() Code {
	all := All()
	for i, code := range all {
		if code == c {
			return all[(i+1)%len(all)]
		}
	}
	return Default
}
