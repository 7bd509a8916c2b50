package middleware

import (
	"errors"
	"net/http"
	"strings"

	"repairdesk/internal/config"
	"repairdesk/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTechnician = "technician"

	principalKey = "principal"
)

var ErrLocationForbidden = errors.New("location not allowed for caller")

var (
	errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid access token", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("FORBIDDEN", "Not allowed for this role", http.StatusForbidden)
)

// Claims are issued by the session provider of the CRM.
type Claims struct {
	Role       string `json:"role"`
	LocationID string `json:"location_id"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller.
type Principal struct {
	UserID     string
	Role       string
	LocationID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Auth validates HS256 bearer tokens. With auth disabled every request runs as a
// local admin so the service can be exercised without a session provider.
func Auth(cfg config.AuthConfig) gin.HandlerFunc {
	secret := []byte(cfg.AccessSecret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		if !cfg.Enabled {
			SetPrincipal(c, Principal{UserID: "local", Role: RoleAdmin})
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		claims := &Claims{}
		parsed, err := parser.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			log.Debug().Err(err).Msg("[auth][middleware] token rejected")
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		role := strings.ToLower(strings.TrimSpace(claims.Role))
		switch role {
		case RoleAdmin, RoleManager, RoleTechnician:
		default:
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}

		SetPrincipal(c, Principal{
			UserID:     claims.Subject,
			Role:       role,
			LocationID: strings.TrimSpace(claims.LocationID),
		})
		c.Next()
	}
}

// RequireRoles aborts with 403 unless the caller holds one of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if ok {
			for _, r := range roles {
				if p.Role == r {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
	}
}

// SetPrincipal stores the caller on the request context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// ResolveLocation picks the location a request works on. Admins may choose any
// location and default to their own; everyone else is pinned to the token claim.
func ResolveLocation(c *gin.Context, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	p, ok := PrincipalFrom(c)
	if !ok {
		return requested, nil
	}
	if p.IsAdmin() {
		if requested != "" {
			return requested, nil
		}
		return p.LocationID, nil
	}
	if requested != "" && requested != p.LocationID {
		return "", ErrLocationForbidden
	}
	return p.LocationID, nil
}
