package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/buildbytes/lms/core"
	"github.com/buildbytes/lms/core/user"
)

const (
	tokenContextKey = "userToken"
	userContextKey  = "user"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// auth bundles token issuance, verification and identity resolution. The
// signing secret and expiration window come from the immutable Config.
type auth struct {
	conf *core.Config
	svc  *user.Service
}

func newAuth(conf *core.Config, svc *user.Service) *auth {
	return &auth{conf: conf, svc: svc}
}

func (a *auth) jwtMiddleware() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    []byte(a.conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	})
}

func (a *auth) claims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(a.conf.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		UserID: usr.ID,
		Email:  usr.Email,
	}
}

// generateToken generates a signed JWT token string representing the user Claims.
func (a *auth) generateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)

	ss, err := token.SignedString([]byte(a.conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// tokenError maps a jwt parse failure onto the API's 401 responses; both
// verifyToken and the HTTP error handler (which receives the middleware's
// parse failures) go through it so the two paths cannot disagree.
func tokenError(vErr *jwt.ValidationError) *echo.HTTPError {
	if vErr.Errors&jwt.ValidationErrorExpired != 0 {
		return errTokenExpired
	}
	return errTokenInvalid
}

// verifyToken parses and validates a compact token string, mirroring the
// middleware's request-side verification. Expired tokens fail with
// errTokenExpired; any other defect (bad signature, malformed, missing
// user id) fails with errTokenInvalid.
func (a *auth) verifyToken(token string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != middleware.AlgorithmHS256 {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(a.conf.SecretKey), nil
	})
	if err != nil {
		if vErr, ok := err.(*jwt.ValidationError); ok {
			return nil, tokenError(vErr)
		}
		return nil, errTokenInvalid
	}
	if claims.UserID == "" {
		return nil, errTokenInvalid
	}
	return claims, nil
}

func (a *auth) contextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// contextUser resolves the authenticated User behind the verified token.
// A valid token whose user no longer exists is unauthenticated, not a
// server error. The resolved User is cached on the echo context for the
// rest of the request.
func (a *auth) contextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(userContextKey).(user.User); ok {
		return usr, nil
	}

	claims, err := a.contextClaims(ctx)
	if err != nil {
		return user.User{}, err
	}
	if claims.UserID == "" {
		return user.User{}, errUnauthorized
	}

	usr, err := a.svc.GetByID(ctx.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, errUnauthorized
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(userContextKey, usr)
	return usr, nil
}
