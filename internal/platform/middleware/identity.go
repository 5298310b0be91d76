// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/facetrace/internal/platform/constants"
	"github.com/taibuivan/facetrace/internal/platform/ctxutil"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenString string) (string, error)
}

type slotKey struct{}

func withIdentitySlot(ctx context.Context, slot *identitySlot) context.Context {
	return context.WithValue(ctx, slotKey{}, slot)
}

// Authenticate resolves the session cookie into a user id.
//
// # Flow
//  1. Read the session cookie. Absent cookies proceed as anonymous.
//  2. Verify it via [TokenVerifier]. Invalid or expired cookies also proceed
//     as anonymous: no route in this service requires a session, and logout
//     must work for stale cookies.
//  3. Inject the user id into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			userID, err := verifier.VerifyToken(cookie.Value)
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "session_cookie_rejected",
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			ctx := request.Context()
			if slot, ok := ctx.Value(slotKey{}).(*identitySlot); ok {
				slot.userID = userID
			}

			ctx = ctxutil.WithUserID(ctx, userID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
