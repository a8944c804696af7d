// Command zero-e2e drives the GraphQLZero users and albums API: single
// calls, document rendering, seeding, the end-to-end scenarios and a local
// stand-in server.
package main

import (
	"context"
	"os"

	"github.com/saturnines/zero-e2e/pkg/errors"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode separates setup problems (2) and unreachable servers (3) from
// failed calls and scenarios (1).
func exitCode(err error) int {
	switch errors.KindOf(err) {
	case errors.ErrConfiguration, errors.ErrFixture:
		return 2
	case errors.ErrHTTPRequest:
		return 3
	default:
		return 1
	}
}
