package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	repo "github.com/fixlocal/fixlocal-api/internal/domain/repository"
	"github.com/fixlocal/fixlocal-api/pkg/helpers"
	"github.com/fixlocal/fixlocal-api/pkg/response"
)

const (
	CtxAccountKey   = "account"
	CtxAccountIDKey = "accountID"
)

// Auth is the gate for protected routes. It extracts the bearer token from
// the Authorization header, verifies it, loads the Account (minus its
// password hash) and attaches it to the context. Any failure aborts with a
// single generic 401; no role checks happen here.
func Auth(accounts repo.AccountRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		acct, err := accounts.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil || acct == nil {
			response.Abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		acct.Password = "" // never expose the hash downstream

		c.Set(CtxAccountKey, acct)
		c.Set(CtxAccountIDKey, acct.ID)
		c.Next()
	}
}

// CurrentAccount returns the authenticated account attached by Auth, or
// nil on unprotected routes.
func CurrentAccount(c *gin.Context) *entity.Account {
	v, ok := c.Get(CtxAccountKey)
	if !ok {
		return nil
	}
	acct, _ := v.(*entity.Account)
	return acct
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
