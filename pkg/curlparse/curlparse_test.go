package curlparse

import (
	"testing"
)

func TestParseBasicGet(t *testing.T) {
	req := Parse(`curl 'https://api.example.com/users?page=2'`)

	if req.URL != "https://api.example.com/users?page=2" {
		t.Errorf("URL = %q", req.URL)
	}
	if req.Method != "GET" {
		t.Errorf("Method = %q, want GET", req.Method)
	}
	if req.HasBody {
		t.Error("unexpected body")
	}
}

func TestParseExplicitMethodAndBody(t *testing.T) {
	req := Parse(`curl -X POST 'https://api.example.com/register' -H 'Content-Type: application/json' --data-raw '{"email":"a@b.com","password":"x"}'`)

	if req.Method != "POST" {
		t.Errorf("Method = %q, want POST", req.Method)
	}
	if req.URL != "https://api.example.com/register" {
		t.Errorf("URL = %q", req.URL)
	}
	if !req.HasBody {
		t.Fatal("expected body")
	}
	if req.Body != `{"email":"a@b.com","password":"x"}` {
		t.Errorf("Body = %q", req.Body)
	}
	if got := req.Headers["Content-Type"]; got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestParseDataImpliesPost(t *testing.T) {
	req := Parse(`curl 'https://api.example.com/items' --data '{"name":"x"}'`)

	if req.Method != "POST" {
		t.Errorf("Method = %q, want POST (data flag present)", req.Method)
	}
}

func TestParseURLBeforeFlags(t *testing.T) {
	// Chrome "Copy as cURL" puts the URL first.
	req := Parse(`curl 'https://api.example.com/x' -X PUT -H 'Authorization: Bearer tok'`)

	if req.URL != "https://api.example.com/x" {
		t.Errorf("URL = %q", req.URL)
	}
	if req.Method != "PUT" {
		t.Errorf("Method = %q, want PUT", req.Method)
	}
	if got := req.Headers["Authorization"]; got != "Bearer tok" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestParseDuplicateHeadersLastWins(t *testing.T) {
	req := Parse(`curl 'https://x.test/a' -H 'X-Tag: one' -H 'X-Tag: two'`)

	if got := req.Headers["X-Tag"]; got != "two" {
		t.Errorf("X-Tag = %q, want two", got)
	}
}

func TestParseWindowsCaretEscaping(t *testing.T) {
	req := Parse(`curl ^"https://api.example.com/orders^" -H ^"Accept: application/json^" --data-raw ^"{\^"qty\^":1}^"`)

	if req.URL != "https://api.example.com/orders" {
		t.Errorf("URL = %q", req.URL)
	}
	if got := req.Headers["Accept"]; got != "application/json" {
		t.Errorf("Accept = %q", got)
	}
	if req.Body != `{"qty":1}` {
		t.Errorf("Body = %q", req.Body)
	}
}

func TestParseEscapedQuotesInBody(t *testing.T) {
	req := Parse(`curl 'https://x.test/a' --data-raw "{\"a\":\"b\\c\"}"`)

	if !req.HasBody {
		t.Fatal("expected body")
	}
	if req.Body != `{"a":"b\c"}` {
		t.Errorf("Body = %q", req.Body)
	}
}

func TestParseDegradesToEmpty(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no keyword", "wget https://x.test"},
		{"keyword only", "curl"},
		{"flags only", "curl -X POST -H 'A: b'"},
		{"garbage", "%%%%^^^^'''"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := Parse(tc.in)
			if req.URL != "" || req.Method != "GET" || len(req.Headers) != 0 || req.HasBody {
				t.Errorf("Parse(%q) = %+v, want empty descriptor", tc.in, req)
			}
		})
	}
}

func TestHeaderLookupCaseInsensitive(t *testing.T) {
	req := Parse(`curl 'https://x.test/a' -H 'content-type: text/plain'`)

	if _, ok := req.Header("Content-Type"); !ok {
		t.Error("expected case-insensitive header lookup to succeed")
	}
}
