package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/pintunes/pintunes-api/internal/core/domain"
)

const sessionKey = "session"

// Session parses an optional Bearer token and injects the resulting session
// into the request context. Requests without a token (or with an invalid one)
// proceed anonymously; the session lifecycle is anonymous → authenticated,
// with teardown being purely client-side.
func Session(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session, ok := parseBearer(c, jwtSecret); ok {
				c.Set(sessionKey, session)
			} else {
				c.Set(sessionKey, domain.Session{})
			}
			return next(c)
		}
	}
}

// RequireSession rejects requests that do not carry a valid Bearer token.
func RequireSession(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := parseBearer(c, jwtSecret)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid session token")
			}
			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

// CtxSession returns the session injected by the middleware; the zero value
// stands for an anonymous request.
func CtxSession(c echo.Context) domain.Session {
	session, _ := c.Get(sessionKey).(domain.Session)
	return session
}

func parseBearer(c echo.Context, jwtSecret string) (domain.Session, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return domain.Session{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Session{}, false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Session{}, false
	}

	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	cid, _ := claims["cid"].(string)
	if cid == "" {
		return domain.Session{}, false
	}

	return domain.Session{Username: username, Email: email, CID: cid}, true
}
