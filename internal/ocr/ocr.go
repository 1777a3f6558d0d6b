package ocr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned when the binary was built without Tesseract support.
var ErrUnavailable = errors.New("ocr: tesseract support not compiled in (build with cgo enabled)")

// Level selects the layout element returned as one fragment.
type Level string

// Supported fragment levels, from coarsest to finest.
const (
	LevelBlock     Level = "block"
	LevelParagraph Level = "paragraph"
	LevelLine      Level = "line"
	LevelWord      Level = "word"
)

// ParseLevel converts a level name to a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelBlock, LevelParagraph, LevelLine, LevelWord:
		return l, nil
	default:
		return "", fmt.Errorf("unknown fragment level %q", s)
	}
}

// DefaultLanguage is the Tesseract language code used when none is set.
const DefaultLanguage = "eng"

// DefaultPageSegMode is Tesseract's fully automatic page segmentation.
const DefaultPageSegMode = 3

// Options configures a Recognizer.
type Options struct {
	// Language is a Tesseract language code, or several joined with "+"
	// (e.g. "eng+deu"). Defaults to "eng".
	Language string

	// TessdataPrefix is the directory holding *.traineddata files. Empty
	// means Tesseract's compiled-in default.
	TessdataPrefix string

	// PageSegMode is a Tesseract page segmentation mode (0-13).
	PageSegMode int

	// Level is the layout element returned as one fragment. Defaults to lines.
	Level Level
}

// withDefaults fills zero fields. PageSegMode 0 (orientation detection only)
// produces no text, so it is treated as unset.
func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.PageSegMode == 0 {
		o.PageSegMode = DefaultPageSegMode
	}
	if o.Level == "" {
		o.Level = LevelLine
	}
	return o
}

// languages splits a "+"-joined language string.
func (o Options) languages() []string {
	parts := strings.Split(o.Language, "+")
	langs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			langs = append(langs, p)
		}
	}
	return langs
}

// JoinFragments collapses whitespace inside each fragment, drops empty
// fragments, and joins the rest with single spaces.
func JoinFragments(fragments []string) string {
	return strings.Join(cleanFragments(fragments), " ")
}

func cleanFragments(fragments []string) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f = strings.Join(strings.Fields(f), " "); f != "" {
			out = append(out, f)
		}
	}
	return out
}
