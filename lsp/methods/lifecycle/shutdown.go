package lifecycle

import (
	"fmt"
	"os"

	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	fmt.Fprintf(os.Stderr, "[GQLLS] Server shutting down\n")

	// Clean up the JS parser pool. Also handled by server.Close(), kept here
	// for clients that send shutdown without the process exiting.
	js.ClosePool()

	return nil
}
