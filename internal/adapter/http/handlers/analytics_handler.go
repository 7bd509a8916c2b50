package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	request "repairdesk/internal/adapter/http/dto/request"
	response "repairdesk/internal/adapter/http/dto/response"
	"repairdesk/internal/adapter/http/middleware"
	"repairdesk/internal/domain/financials"
	"repairdesk/internal/usecase"
	"repairdesk/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout      = "2006-01-02"
)

var errInvalidPeriod = pkg.NewDomainErrorSimple("INVALID_PERIOD", "from and to must be dates (YYYY-MM-DD) with from <= to", http.StatusBadRequest)

// AnalyticsHandler serves period reports and technician bonuses.
type AnalyticsHandler struct {
	usecase  usecase.IAnalyticsUseCase
	location *time.Location
}

// NewAnalyticsHandler parses date-only query params in loc.
func NewAnalyticsHandler(uc usecase.IAnalyticsUseCase, loc *time.Location) *AnalyticsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsHandler{usecase: uc, location: loc}
}

// PeriodReport godoc
// @Summary      Period analytics
// @Description  Revenue and profit of closed orders grouped by technician, lead source, day and part.
// @Tags         analytics
// @Produce      json
// @Param        from         query     string  true   "First day (YYYY-MM-DD)"
// @Param        to           query     string  true   "Last day (YYYY-MM-DD)"
// @Param        location_id  query     string  false  "Location (admins only)"
// @Success      200          {object}  response.PeriodReportResponse
// @Failure      400          {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /analytics/period [get]
func (h *AnalyticsHandler) PeriodReport(c *gin.Context) {
	from, to, ok := h.period(c)
	if !ok {
		return
	}
	locationID, ok := resolveLocation(c, c.Query("location_id"))
	if !ok {
		return
	}

	report, err := h.usecase.PeriodReport(c.Request.Context(), locationID, from, to)
	if err != nil {
		writeError(c, mapAnalyticsError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPeriodReport(report))
}

// TechnicianBonuses returns the month's bonus table. Technicians only see their own row.
func (h *AnalyticsHandler) TechnicianBonuses(c *gin.Context) {
	locationID, ok := resolveLocation(c, c.Query("location_id"))
	if !ok {
		return
	}

	report, err := h.usecase.TechnicianBonuses(c.Request.Context(), locationID, c.Query("month"))
	if err != nil {
		writeError(c, mapAnalyticsError(err))
		return
	}

	if p, ok := middleware.PrincipalFrom(c); ok && p.Role == middleware.RoleTechnician {
		own := make([]financials.TechnicianPeriodSummary, 0, 1)
		for _, s := range report.Technicians {
			if s.TechnicianID == p.UserID {
				own = append(own, s)
			}
		}
		report.Technicians = own
	}
	c.JSON(http.StatusOK, response.FromBonusReport(report))
}

func (h *AnalyticsHandler) CalculateBonus(c *gin.Context) {
	var payload request.BonusCalculateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	locationID, ok := resolveLocation(c, payload.LocationID)
	if !ok {
		return
	}

	summary, err := h.usecase.CalculateBonus(locationID, payload.TotalLabor)
	if err != nil {
		writeError(c, mapAnalyticsError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromTechnicianSummary(summary))
}

// ExportPeriod streams the period report as an XLSX workbook.
func (h *AnalyticsHandler) ExportPeriod(c *gin.Context) {
	from, to, ok := h.period(c)
	if !ok {
		return
	}
	locationID, ok := resolveLocation(c, c.Query("location_id"))
	if !ok {
		return
	}

	b, err := h.usecase.ExportPeriod(c.Request.Context(), locationID, from, to)
	if err != nil {
		writeError(c, mapAnalyticsError(err))
		return
	}
	filename := fmt.Sprintf("period_%s_%s_%s.xlsx", locationID, from.Format(dateLayout), to.Format(dateLayout))
	log.Info().Str("location_id", locationID).Int("bytes", len(b)).Msg("[analytics][handler] export ready")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, b)
}

// period reads from/to. Date-only values cover whole days in the report time zone.
func (h *AnalyticsHandler) period(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := h.parseDate(c.Query("from"), false)
	if err != nil {
		writeError(c, errInvalidPeriod)
		return time.Time{}, time.Time{}, false
	}
	to, err := h.parseDate(c.Query("to"), true)
	if err != nil || to.Before(from) {
		writeError(c, errInvalidPeriod)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *AnalyticsHandler) parseDate(raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, h.location)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return d.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return d, nil
}

func mapAnalyticsError(err error) *pkg.AppError {
	if appErr, ok := validationError("INVALID_BONUS_INPUT", err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidPeriod):
		return errInvalidPeriod
	case errors.Is(err, usecase.ErrInvalidMonth):
		return pkg.NewDomainErrorSimple("INVALID_MONTH", "month must be YYYY-MM", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidLocationID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrExporterUnavailable):
		return pkg.NewDomainErrorSimple("EXPORT_UNAVAILABLE", "Export is not available", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
