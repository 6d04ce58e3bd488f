package middlewares

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"triphub/src/authz"
	"triphub/src/types"
	"triphub/src/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type Verifier interface {
	Verify(ctx context.Context, token string) (*types.VerifiedToken, error)
}

type RoleResolver interface {
	Resolve(ctx context.Context, email string) (types.Role, error)
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Authenticate verifies the bearer token and resolves the caller's role.
// Requests without a valid token are rejected with 401.
func Authenticate(verifier Verifier, roles RoleResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := bearerToken(ctx)
		if raw == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		token, err := verifier.Verify(ctx.Request.Context(), raw)
		if err != nil {
			log.Printf("Failed to verify ID token: %s\n", err.Error())
			status := http.StatusUnauthorized
			if errors.Is(err, types.ErrUpstream) {
				status = utils.StatusFor(err)
			}
			ctx.AbortWithStatusJSON(status, gin.H{"error": "failed to verify ID token"})
			return
		}
		role, err := roles.Resolve(ctx.Request.Context(), token.Email)
		if err != nil {
			log.Printf("Error resolving role of %s: %s\n", token.Email, err.Error())
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not resolve role"})
			return
		}
		ctx.Set(identityKey, &authz.Identity{UID: token.UID, Email: token.Email, Role: role})
		ctx.Next()
	}
}

// RequireRole runs the authorization policy before the handler.
func RequireRole(role types.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := authz.Authorize(GetIdentity(ctx), role); err != nil {
			ctx.AbortWithStatusJSON(utils.StatusFor(err), gin.H{"error": err.Error()})
			return
		}
		ctx.Next()
	}
}

func GetIdentity(ctx *gin.Context) *authz.Identity {
	v, ok := ctx.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*authz.Identity)
	return identity
}

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	ctx.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	ctx.Next()
}
