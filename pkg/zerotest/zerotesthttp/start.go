// Package zerotesthttp starts the stand-in server inside Go tests. It is
// kept apart from zerotest so binaries serving the stand-in do not link
// the testing package.
package zerotesthttp

import (
	"net/http/httptest"
	"testing"

	"github.com/saturnines/zero-e2e/pkg/zerotest"
)

// Start runs a seeded server for the duration of tb and returns it with
// the full endpoint URL.
func Start(tb testing.TB, opts ...zerotest.Option) (*zerotest.Server, string) {
	tb.Helper()
	s := zerotest.NewServer(nil, opts...)
	ts := httptest.NewServer(s)
	tb.Cleanup(ts.Close)
	return s, ts.URL + zerotest.Path
}
