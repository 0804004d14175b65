package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smartmolding/internal/service"
)

const (
	errGetHistory   = "failed to load downtime history"
	errDateInvalid  = "invalid 'date'; use YYYY-MM-DD"
	errShiftInvalid = "invalid 'shift'; use ALL, 1, 2 or 3"

	layoutDate = "2006-01-02"
)

// parseHistoryFilter reads the shared query params of the history endpoints.
func parseHistoryFilter(c *gin.Context) (service.HistoryFilter, string) {
	var f service.HistoryFilter

	if qs := c.Query("date"); qs != "" {
		if _, err := time.Parse(layoutDate, qs); err != nil {
			return f, errDateInvalid
		}
		f.Date = qs
	}

	switch strings.ToUpper(strings.TrimSpace(c.Query("shift"))) {
	case "", "ALL":
		f.Shift = 0
	case "1":
		f.Shift = 1
	case "2":
		f.Shift = 2
	case "3":
		f.Shift = 3
	default:
		return f, errShiftInvalid
	}

	f.Code = c.Query("code")
	return f, ""
}

// @Summary      Downtime history
// @Description  Filters the event log by plant-local date, shift and machine-code substring; most recent first.
// @Tags         history
// @Produce      json
// @Param        date   query  string  false  "Calendar day (YYYY-MM-DD)"  example(2024-05-01)
// @Param        shift  query  string  false  "Shift filter"  Enums(ALL,1,2,3)
// @Param        code   query  string  false  "Machine-code substring, case-insensitive"
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	f, badParam := parseHistoryFilter(c)
	if badParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": badParam})
		return
	}

	entries, err := h.services.History.Query(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetHistory, "history_query_failed", err,
			"date", f.Date, "shift", f.Shift, "code", f.Code)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(entries),
		"events": entries,
	})
}

// @Summary      Export downtime history
// @Description  Same filters as /history; returns flat report rows for the spreadsheet exporter.
// @Tags         history
// @Produce      json
// @Param        date   query  string  false  "Calendar day (YYYY-MM-DD)"  example(2024-05-01)
// @Param        shift  query  string  false  "Shift filter"  Enums(ALL,1,2,3)
// @Param        code   query  string  false  "Machine-code substring, case-insensitive"
// @Success      200  {object}  map[string]interface{}  "count, rows"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history/export [get]
func (h *Handler) exportHistory(c *gin.Context) {
	f, badParam := parseHistoryFilter(c)
	if badParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": badParam})
		return
	}

	rows, err := h.services.History.ExportRows(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetHistory, "history_export_failed", err,
			"date", f.Date, "shift", f.Shift, "code", f.Code)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(rows),
		"rows":  rows,
	})
}
