package lsp

import (
	"fmt"
	"os"
	"runtime/debug"

	"bennypowers.dev/gqlls/lsp/methods/workspace"
	"bennypowers.dev/gqlls/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps an LSP handler that returns (result, error) with middleware.
// Returns the underlying function type so it's compatible with protocol.Handler field types.
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		// Panic recovery - prevents LSP server crashes
		defer func() {
			if r := recover(); r != nil {
				stackTrace := string(debug.Stack())
				fmt.Fprintf(os.Stderr, "[LSP] PANIC in %s: %v\nStack trace:\n%s",
					methodName, r, stackTrace)
				workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
				var zero R
				result = zero
			}
		}()

		fmt.Fprintf(os.Stderr, "[LSP] %s started\n", methodName)

		req := types.NewRequestContext(s, ctx)
		result, err = handler(req, params)

		if err != nil {
			fmt.Fprintf(os.Stderr, "[LSP] %s error: %v\n", methodName, err)
			workspace.LogError(ctx, "%s: %v", methodName, err)
			return result, fmt.Errorf("%s: %w", methodName, err)
		}

		for _, warning := range req.Warnings() {
			workspace.LogWarning(ctx, "%s: %v", methodName, warning)
		}

		fmt.Fprintf(os.Stderr, "[LSP] %s completed successfully\n", methodName)
		return result, nil
	}
}

// notify wraps an LSP notification handler that returns only error
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stackTrace := string(debug.Stack())
				fmt.Fprintf(os.Stderr, "[LSP] PANIC in %s: %v\nStack trace:\n%s",
					methodName, r, stackTrace)
				workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
			}
		}()

		fmt.Fprintf(os.Stderr, "[LSP] %s started\n", methodName)

		req := types.NewRequestContext(s, ctx)
		err = handler(req, params)

		if err != nil {
			fmt.Fprintf(os.Stderr, "[LSP] %s error: %v\n", methodName, err)
			workspace.LogError(ctx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}

		for _, warning := range req.Warnings() {
			workspace.LogWarning(ctx, "%s: %v", methodName, warning)
		}

		fmt.Fprintf(os.Stderr, "[LSP] %s completed successfully\n", methodName)
		return nil
	}
}

// noParam wraps an LSP handler that takes no params (like Shutdown)
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stackTrace := string(debug.Stack())
				fmt.Fprintf(os.Stderr, "[LSP] PANIC in %s: %v\nStack trace:\n%s",
					methodName, r, stackTrace)
				workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
			}
		}()

		fmt.Fprintf(os.Stderr, "[LSP] %s started\n", methodName)

		req := types.NewRequestContext(s, ctx)
		err = handler(req)

		if err != nil {
			fmt.Fprintf(os.Stderr, "[LSP] %s error: %v\n", methodName, err)
			workspace.LogError(ctx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}

		fmt.Fprintf(os.Stderr, "[LSP] %s completed successfully\n", methodName)
		return nil
	}
}
