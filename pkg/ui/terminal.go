package ui

import (
	"os"
	"runtime"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/term"
)

var (
	unicodeOnce sync.Once
	unicodeOK   bool
)

// UnicodeTerminal reports whether stderr can render Unicode glyphs
// such as braille spinner frames. It returns false when output is
// piped or redirected, when TERM is "dumb", and on Windows consoles
// other than Windows Terminal, whose default fonts lack the glyphs.
func UnicodeTerminal() bool {
	unicodeOnce.Do(func() {
		if os.Getenv("TERM") == "dumb" {
			return
		}
		if !term.IsTerminal(int(os.Stderr.Fd())) {
			return
		}
		if runtime.GOOS == "windows" {
			// Windows Terminal sets WT_SESSION; legacy conhost does not.
			unicodeOK = os.Getenv("WT_SESSION") != ""
			return
		}
		unicodeOK = true
	})
	return unicodeOK
}

// DefaultSpinner returns a braille-dot spinner on Unicode terminals
// and the ASCII line spinner (-\|/) everywhere else.
func DefaultSpinner() Spinner {
	if UnicodeTerminal() {
		return Spinners[SpinnerDots]
	}
	return Spinners[SpinnerLine]
}

// Icon returns unicode when the terminal supports it, ascii otherwise.
func Icon(unicode, ascii string) string {
	if UnicodeTerminal() {
		return unicode
	}
	return ascii
}

// SanitizeString strips runes the current terminal cannot render.
// Scenario names and transport errors may carry arbitrary bytes echoed
// from an LLM completion or a remote server; on Unicode-capable
// terminals the string passes through unchanged.
func SanitizeString(s string) string {
	if UnicodeTerminal() {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r < 0x80:
			b.WriteByte(s[i])
		case isVariationSelector(r):
			// display modifiers, drop silently
		case isSafeForLegacy(r):
			b.WriteRune(r)
		default:
			// emoji, braille, block chars
		}
		i += size
	}
	return b.String()
}

// isVariationSelector matches U+FE00..U+FE0F, which alter how the
// preceding character displays (e.g. U+FE0F emoji presentation).
func isVariationSelector(r rune) bool {
	return r >= 0xFE00 && r <= 0xFE0F
}

// isSafeForLegacy reports whether legacy Windows consoles can
// typically render r. Latin scripts and the Latin-1 range are safe;
// box-drawing and block elements are hit-or-miss, so they are
// excluded along with emoji and braille.
func isSafeForLegacy(r rune) bool {
	if r <= 0xFF {
		return true
	}
	return unicode.Is(unicode.Latin, r)
}
