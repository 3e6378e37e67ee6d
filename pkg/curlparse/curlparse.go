// Package curlparse turns a captured curl invocation string into a
// structured request descriptor. Captured commands arrive with shell
// escaping artifacts (Windows caret quoting, escaped quotes, doubled
// backslashes) which are normalized away during parsing.
package curlparse

import (
	"regexp"
	"strings"
)

// Request is the structured descriptor of a captured HTTP invocation.
type Request struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body,omitempty"`
	HasBody bool              `json:"-"`
}

// Header returns the value for name using exact (case-sensitive) match,
// falling back to a case-insensitive scan. Captured headers keep their
// original casing.
func (r *Request) Header(name string) (string, bool) {
	if v, ok := r.Headers[name]; ok {
		return v, true
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

var (
	methodRe  = regexp.MustCompile(`(?:^|\s)(?:-X|--request)\s+['"]?([A-Za-z]+)['"]?`)
	headerRe  = regexp.MustCompile(`(?:^|\s)(?:-H|--header)\s+(?:"((?:[^"\\]|\\.)*)"|'([^']*)')`)
	dataFlags = regexp.MustCompile(`(?:^|\s)(?:-d|--data|--data-raw|--data-binary|--data-urlencode)(?:\s|$)`)

	// Payload flag patterns, tried in order; first match wins.
	bodyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`--data-raw\s+(?:'([^']*)'|"((?:[^"\\]|\\.)*)")`),
		regexp.MustCompile(`--data-raw\s+([^\s'"][^\s]*)`),
		regexp.MustCompile(`--data\s+(?:'([^']*)'|"((?:[^"\\]|\\.)*)")`),
		regexp.MustCompile(`(?:^|\s)-d\s+(?:'([^']*)'|"((?:[^"\\]|\\.)*)")`),
	}

	// Flags that consume the following token, skipped while hunting
	// for the URL.
	valueFlags = map[string]bool{
		"-X": true, "--request": true,
		"-H": true, "--header": true,
		"-d": true, "--data": true, "--data-raw": true,
		"--data-binary": true, "--data-urlencode": true,
		"-u": true, "--user": true,
		"-b": true, "--cookie": true,
		"-A": true, "--user-agent": true,
		"-e": true, "--referer": true,
		"-o": true, "--output": true,
		"-F": true, "--form": true,
		"-m": true, "--max-time": true,
	}
)

// Parse converts a captured curl command into a Request. It never fails:
// malformed input degrades to an empty descriptor (empty URL, GET, no
// headers, no body) rather than returning an error.
func Parse(raw string) *Request {
	empty := &Request{Method: "GET", Headers: map[string]string{}}

	cmd := stripCarets(raw)
	if !strings.Contains(cmd, "curl") {
		return empty
	}

	targetURL := extractURL(cmd)
	if targetURL == "" {
		return empty
	}

	req := &Request{
		URL:     targetURL,
		Method:  "GET",
		Headers: map[string]string{},
	}

	if m := methodRe.FindStringSubmatch(cmd); m != nil {
		req.Method = strings.ToUpper(m[1])
	} else if dataFlags.MatchString(cmd) {
		// Data-carrying invocation with no explicit method means POST.
		req.Method = "POST"
	}

	for _, m := range headerRe.FindAllStringSubmatch(cmd, -1) {
		entry := m[1]
		if entry == "" {
			entry = m[2]
		}
		name, value, ok := strings.Cut(unescape(entry), ":")
		if !ok {
			continue
		}
		// Later duplicates overwrite earlier ones.
		req.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}

	for _, pat := range bodyPatterns {
		m := pat.FindStringSubmatch(cmd)
		if m == nil {
			continue
		}
		body := ""
		for _, g := range m[1:] {
			if g != "" {
				body = g
				break
			}
		}
		// An empty quoted payload still counts as a present body.
		req.Body = unescape(body)
		req.HasBody = true
		break
	}

	return req
}

// stripCarets removes Windows cmd escaping artifacts: caret-quoted
// quotes first, then bare carets.
func stripCarets(s string) string {
	s = strings.ReplaceAll(s, `^"`, `"`)
	return strings.ReplaceAll(s, "^", "")
}

// unescape resolves shell escape sequences left in captured tokens.
func unescape(s string) string {
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `\"`, `"`)
	return s
}

// extractURL returns the first quoted-or-bare non-flag token after the
// curl keyword, trimmed of surrounding quotes.
func extractURL(cmd string) string {
	idx := strings.Index(cmd, "curl")
	if idx < 0 {
		return ""
	}
	rest := cmd[idx+len("curl"):]

	for _, tok := range tokenize(rest) {
		if strings.HasPrefix(tok.text, "-") {
			continue
		}
		if tok.prev != "" && valueFlags[tok.prev] {
			continue
		}
		return strings.Trim(tok.text, `'"`)
	}
	return ""
}

type token struct {
	text string
	prev string // preceding bare token, for flag-value skipping
}

// tokenize splits on whitespace while keeping quoted spans intact.
func tokenize(s string) []token {
	var toks []token
	var cur strings.Builder
	var quote byte
	prev := ""

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		t := cur.String()
		toks = append(toks, token{text: t, prev: prev})
		prev = t
		cur.Reset()
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return toks
}
