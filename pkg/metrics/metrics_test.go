package metrics

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServerServesObservations(t *testing.T) {
	srv, err := NewServer(Options{Port: freePort(t)})
	require.NoError(t, err)
	defer srv.Close()

	srv.ObserveRequest("nominal", 201, true, 42*time.Millisecond)
	srv.ObserveRequest("auth_missing", 200, false, 10*time.Millisecond)
	srv.ObserveRequest("dead", 0, false, 0)

	var body string
	// The listener starts asynchronously; retry briefly.
	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.Addr())
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		body = string(b)
		return true
	}, 2*time.Second, 20*time.Millisecond)

	assert.Contains(t, body, `apiprobe_requests_total{scenario="nominal",status="201"} 1`)
	assert.Contains(t, body, `apiprobe_requests_total{scenario="auth_missing",status="200"} 1`)
	assert.Contains(t, body, `apiprobe_failures_total{scenario="auth_missing"} 1`)
	assert.Contains(t, body, `apiprobe_requests_total{scenario="dead",status="0"} 1`)
	assert.NotContains(t, body, `apiprobe_failures_total{scenario="nominal"}`)
}

func TestObserveAfterCloseIsNoop(t *testing.T) {
	srv, err := NewServer(Options{Port: freePort(t)})
	require.NoError(t, err)
	require.NoError(t, srv.Close())

	// Must not panic or block.
	srv.ObserveRequest("late", 200, true, time.Millisecond)
	assert.NoError(t, srv.Close(), "double close is safe")
}
