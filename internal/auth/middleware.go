package auth

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devmatch/devmatch/internal/db"
	svcErr "github.com/devmatch/devmatch/internal/errors"
	"github.com/devmatch/devmatch/internal/repository"
)

// CookieName is the httpOnly cookie carrying the signed token.
const CookieName = "token"

const ctxUserKey = "auth.user"

// Middleware resolves the caller from a signed token (cookie or bearer header)
// and loads the matching user record for downstream handlers. Read-only.
//
// Failure modes:
//   - no token at all         → 401 Unauthenticated
//   - expired token           → 401 TokenExpired
//   - malformed/forged token  → 401 InvalidToken
//   - token for a missing user → 404 NotFound
func Middleware(j *JWTer, users *repository.UserRepository, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(CookieName)
		if token == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
		}
		if token == "" {
			abort(c, svcErr.Unauthenticated())
			return
		}

		uid, err := j.Parse(token)
		if err != nil {
			if err == ErrExpired {
				abort(c, svcErr.TokenExpired())
				return
			}
			abort(c, svcErr.InvalidToken())
			return
		}

		user, err := users.FindByID(c.Request.Context(), uid)
		if err != nil {
			log.Error("auth lookup failed", "user_id", uid, "err", err)
			abort(c, svcErr.Map(err))
			return
		}
		if user == nil {
			abort(c, svcErr.NotFound("User not found"))
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the viewer resolved by Middleware.
func CurrentUser(c *gin.Context) *db.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*db.User); ok {
			return u
		}
	}
	return nil
}

// SetCurrentUser injects a viewer directly; used by handler tests.
func SetCurrentUser(c *gin.Context, u *db.User) {
	c.Set(ctxUserKey, u)
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(svcErr.HTTPStatus(err), gin.H{"message": svcErr.ClientMessage(err)})
	_ = c.Error(err)
}

// SetTokenCookie attaches the signed token as an httpOnly cookie.
func SetTokenCookie(c *gin.Context, token string, maxAgeSec int) {
	c.SetCookie(CookieName, token, maxAgeSec, "/", "", false, true)
}

// ClearTokenCookie expires the cookie immediately. The token itself remains
// valid until natural expiry; logout is purely client-side state.
func ClearTokenCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
