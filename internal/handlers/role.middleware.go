package handlers

import (
	xhttp "github.com/venuetix/ticketing/pkg/http"
)

const roleHeader = "X-User-Role"

// RequireRole gates a handler on the role header set by the upstream
// gateway. Tokens are validated before requests ever reach this
// service; this only matches the already-trusted verdict against the
// route's allow-list.
func RequireRole(handler func(ctx *xhttp.RequestCtx), roles ...string) func(ctx *xhttp.RequestCtx) {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(ctx *xhttp.RequestCtx) {
		role := string(ctx.Request.Header.Peek(roleHeader))
		if _, ok := allowed[role]; !ok {
			writeError(ctx, xhttp.StatusForbidden, "insufficient role")
			return
		}
		handler(ctx)
	}
}
