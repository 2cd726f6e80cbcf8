package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ishop/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewJWTMiddleware builds the bearer token guard for the API routes. Tokens
// are verified against the JWKS at jwksURL when set, otherwise with the HMAC
// secret. It returns a nil middleware when neither is configured. The
// returned stop func ends the JWKS background refresh.
func NewJWTMiddleware(ctx context.Context, secret, jwksURL string, log *zap.Logger) (echo.MiddlewareFunc, func(), error) {
	cfg := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		SuccessHandler: storeSubject,
		ErrorHandler: func(c echo.Context, err error) error {
			log.Debug("rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
			return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Invalid or missing token", nil))
		},
	}

	stop := func() {}
	switch {
	case jwksURL != "":
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			Ctx:               ctx,
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				log.Warn("jwks refresh failed", zap.String("url", jwksURL), zap.Error(err))
			},
		})
		if err != nil {
			return nil, stop, fmt.Errorf("load jwks: %w", err)
		}
		cfg.KeyFunc = jwks.Keyfunc
		stop = jwks.EndBackground
	case secret != "":
		cfg.SigningKey = []byte(secret)
	default:
		log.Warn("authentication is disabled: neither auth.jwt_secret nor auth.jwks_url is set")
		return nil, stop, nil
	}

	return echojwt.WithConfig(cfg), stop, nil
}

// storeSubject copies a uuid "sub" claim into the request context.
func storeSubject(c echo.Context) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return
	}
	ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}
