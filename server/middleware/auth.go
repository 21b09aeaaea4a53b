package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/errkit/errors"
)

// AuthConfig configures the JWT authentication middleware.
type AuthConfig struct {
	// Secret is the HMAC key used when Keyfunc is nil.
	Secret []byte
	// Keyfunc resolves the verification key for a token.
	Keyfunc jwt.Keyfunc
	// Methods lists the accepted signing algorithms. Defaults to HS256.
	Methods []string
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string
}

// Auth returns a Gin middleware that validates Bearer tokens. A missing header
// yields a not-authenticated error; token parsing errors are attached as is
// and classified by the exception handler. Validated claims are stored under
// KeyClaims and the subject under KeyUserID.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	if len(cfg.Methods) == 0 {
		cfg.Methods = []string{jwt.SigningMethodHS256.Alg()}
	}
	keyfunc := cfg.Keyfunc
	if keyfunc == nil {
		keyfunc = func(*jwt.Token) (any, error) { return cfg.Secret, nil }
	}
	parser := jwt.NewParser(jwt.WithValidMethods(cfg.Methods))

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(errors.NotAuthenticated())
			c.Abort()
			return
		}

		scheme, raw, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			_ = c.Error(errors.AuthenticationFailed("Invalid authorization header format."))
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(strings.TrimSpace(raw), claims, keyfunc); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(KeyClaims, claims)
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			c.Set(KeyUserID, sub)
		}
		c.Next()
	}
}
