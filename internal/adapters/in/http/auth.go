package http

import (
	"errors"
	"net/http"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"
	"checkout/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const tokenContextKey = "user"

// NewAuthMiddleware verifies bearer tokens signed with secret (HS256). A request
// without a token continues as anonymous; a bad token is rejected with 401.
// The token subject is the user id.
func NewAuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(_ echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return nil
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
		},
	})
}

// RequireActor rejects anonymous requests with 403 before any handler runs.
func RequireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		if actor.IsAnonymous() {
			return errs.NewNotAcceptableError(services.ErrUnauthenticated, reasonUnauthenticated)
		}
		return next(c)
	}
}

// actorOf reads the actor from the verified token, anonymous when there is none.
func actorOf(c echo.Context) (kernel.Actor, error) {
	token, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok || token == nil {
		return kernel.AnonymousActor(), nil
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
	}
	userID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
	}

	return kernel.AuthenticatedActor(userID)
}
