package handlers

import (
	"errors"
	"net/http"

	"repairdesk/internal/adapter/http/middleware"
	"repairdesk/internal/domain/financials"
	"repairdesk/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errForbiddenScope = pkg.NewDomainErrorSimple("FORBIDDEN", "Not allowed for this location", http.StatusForbidden)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// validationError keeps the offending line or field in the message.
func validationError(code string, err error) (*pkg.AppError, bool) {
	if errors.Is(err, financials.ErrValidation) {
		return pkg.NewDomainError(code, err.Error(), err, http.StatusBadRequest), true
	}
	return nil, false
}

// resolveLocation writes 403 and returns false when the caller may not use requested.
func resolveLocation(c *gin.Context, requested string) (string, bool) {
	loc, err := middleware.ResolveLocation(c, requested)
	if err != nil {
		writeError(c, errForbiddenScope)
		return "", false
	}
	return loc, true
}

// restricted reports whether the caller is pinned to a single location.
func restricted(c *gin.Context) bool {
	p, ok := middleware.PrincipalFrom(c)
	return ok && !p.IsAdmin()
}

// inScope reports whether the caller may touch data of locationID.
func inScope(c *gin.Context, locationID string) bool {
	if !restricted(c) {
		return true
	}
	p, _ := middleware.PrincipalFrom(c)
	return p.LocationID == locationID
}
