package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smartmolding/internal/service"
)

const (
	errBulkMatch = "failed to match machine codes"
)

// Request DTO for bulk endpoints. Text is the raw uploaded list; Codes may be
// passed instead when the caller already tokenized it.
type bulkRequest struct {
	Text   string   `json:"text,omitempty"`
	Codes  []string `json:"codes,omitempty"`
	Reason string   `json:"reason,omitempty"` // stop only; defaults to "Không có đơn hàng"
}

// BulkRequest is the exported model for Swagger docs of the bulk payload.
type BulkRequest struct {
	// Raw code list; entries separated by newline, comma, semicolon or tab
	Text string `json:"text,omitempty" example:"CLF180-25, JAD450-01"`
	// Pre-tokenized codes (alternative to text)
	Codes []string `json:"codes,omitempty"`
	// Stoppage reason for /bulk/stop
	Reason string `json:"reason,omitempty" example:"Không có đơn hàng"`
}

func (r bulkRequest) normalizedCodes() []string {
	if len(r.Codes) > 0 {
		return service.ParseCodes(strings.Join(r.Codes, "\n"))
	}
	return service.ParseCodes(r.Text)
}

// @Summary      Match uploaded machine codes
// @Description  Parses the uploaded code list and returns the RUNNING machines it matches. "Zero codes parsed" and "no machine matched" are reported separately.
// @Tags         bulk
// @Accept       json
// @Produce      json
// @Param        body  body  BulkRequest  true  "Code list"
// @Success      200  {object}  map[string]interface{}  "codes_parsed, matched_count, machines"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/bulk/match [post]
func (h *Handler) bulkMatch(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	codes := req.normalizedCodes()
	matched, err := h.services.Bulk.Match(c.Request.Context(), codes)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errBulkMatch, "bulk_match_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"codes_parsed":  len(codes),
		"matched_count": len(matched),
		"machines":      matched,
	})
}

// @Summary      Bulk stop matched machines
// @Description  Matches the code list against RUNNING machines and stops each match independently; one failure does not abort the rest.
// @Tags         bulk
// @Accept       json
// @Produce      json
// @Param        body  body  BulkRequest  true  "Code list and optional reason"
// @Success      200  {object}  map[string]interface{}  "codes_parsed, matched_count, stopped, failed"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/bulk/stop [post]
func (h *Handler) bulkStop(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()

	codes := req.normalizedCodes()
	matched, err := h.services.Bulk.Match(ctx, codes)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errBulkMatch, "bulk_stop_match_failed", err)
		return
	}

	ids := make([]string, 0, len(matched))
	for _, m := range matched {
		ids = append(ids, m.ID)
	}
	res := h.services.Bulk.StopMatched(ctx, ids, req.Reason, time.Time{})

	c.JSON(http.StatusOK, gin.H{
		"codes_parsed":  len(codes),
		"matched_count": len(matched),
		"stopped":       res.Stopped,
		"failed":        res.Failed,
	})
}
