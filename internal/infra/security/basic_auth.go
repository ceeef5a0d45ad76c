package security

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"bnb/internal/app/policies"
)

const realm = `Basic realm="bnb admin", charset="UTF-8"`

// AdminCredentials is one administrator checked with HTTP basic auth. The
// password is kept only as a bcrypt hash.
type AdminCredentials struct {
	User         string
	PasswordHash string
	Hasher       BcryptHasher
}

func (a AdminCredentials) Verify(user, password string) error {
	if a.User == "" || a.PasswordHash == "" {
		return ErrBadCredentials
	}
	if subtle.ConstantTimeCompare([]byte(user), []byte(a.User)) != 1 {
		return ErrBadCredentials
	}
	return a.Hasher.Compare(a.PasswordHash, password)
}

// BasicAuth guards a route group. On success the administrator is put on
// the request context for the command bus to see.
func (a AdminCredentials) BasicAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, password, ok := c.Request.BasicAuth()
		if !ok || a.Verify(user, password) != nil {
			c.Header("WWW-Authenticate", realm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Request = c.Request.WithContext(policies.WithAdmin(c.Request.Context(), user))
		c.Next()
	}
}
