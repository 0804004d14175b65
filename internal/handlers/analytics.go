package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartmolding/internal/service"
)

const (
	errGetAnalytics = "failed to compute analytics"
	errAtInvalid    = "invalid 'at' time; use RFC3339"
)

// @Summary      Availability analytics
// @Description  Recomputes downtime totals, planned/unexpected split, availability and reason/brand breakdowns from the current log.
// @Tags         analytics
// @Produce      json
// @Param        area  query  int     false  "Factory area (1-3); omit for all"
// @Param        at    query  string  false  "Reference time (RFC3339); defaults to now"  example(2024-05-01T08:30:00Z)
// @Success      200  {object}  service.AnalyticsReport
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/analytics [get]
func (h *Handler) getAnalytics(c *gin.Context) {
	area, ok := parseAreaQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidArea})
		return
	}

	var at time.Time
	if qs := c.Query("at"); qs != "" {
		parsed, err := time.Parse(time.RFC3339, qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errAtInvalid})
			return
		}
		at = parsed.UTC()
	}

	report, err := h.services.Analytics.Compute(c.Request.Context(), service.AnalyticsFilter{Area: area, At: at})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetAnalytics, "analytics_failed", err, "area", area)
		return
	}
	c.JSON(http.StatusOK, report)
}
