package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartmolding/internal/catalog"
	"smartmolding/internal/models"
	"smartmolding/internal/service"
)

const (
	statusOK      = "ok"
	statusUpdated = "updated"

	errListMachines  = "failed to list machines"
	errGetMachine    = "failed to load machine"
	errUpdateMachine = "failed to update machine"
	errSetStatus     = "failed to change machine status"
	errFloorStats    = "failed to compute floor stats"

	errInvalidBodyPref = "invalid body: "
	errInvalidArea     = "invalid 'area': use 1, 2 or 3"
)

// logAndJSONError centralizes failure logging and the error response shape.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// parseAreaQuery reads ?area= as 0 (absent, whole floor) or 1..3.
func parseAreaQuery(c *gin.Context) (int, bool) {
	qs := c.Query("area")
	if qs == "" {
		return 0, true
	}
	area, err := strconv.Atoi(qs)
	if err != nil || area < 1 || area > 3 {
		return 0, false
	}
	return area, true
}

// Request DTO for a status transition.
type statusRequest struct {
	Status string `json:"status" binding:"required"` // RUNNING | STOPPED
	Reason string `json:"reason,omitempty"`          // required when status=STOPPED
}

// SetStatusRequest is the exported model for Swagger docs of the status payload.
type SetStatusRequest struct {
	// Status to set. Allowed: RUNNING, STOPPED
	Status string `json:"status" example:"STOPPED"`
	// Stoppage reason (required when status=STOPPED)
	Reason string `json:"reason,omitempty" example:"Bảo trì"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      List machines
// @Tags         machines
// @Produce      json
// @Param        area  query  int  false  "Factory area (1-3); omit for all"
// @Success      200  {object}  map[string]interface{}  "count, machines"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/machines [get]
func (h *Handler) listMachines(c *gin.Context) {
	area, ok := parseAreaQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidArea})
		return
	}
	machines, err := h.services.Machines.List(c.Request.Context(), area)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListMachines, "machines_list_failed", err, "area", area)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(machines),
		"machines": machines,
	})
}

// @Summary      Get one machine
// @Tags         machines
// @Produce      json
// @Param        id  path  string  true  "Machine id"
// @Success      200  {object}  models.Machine
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/machines/{id} [get]
func (h *Handler) getMachine(c *gin.Context) {
	m, err := h.services.Machines.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownMachine) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetMachine, "machine_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Edit machine details
// @Description  Updates descriptive fields only; status and the downtime reason are owned by the status endpoint.
// @Tags         machines
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Machine id"
// @Param        body  body  models.MachineUpdate  true  "Fields to change"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/machines/{id} [patch]
func (h *Handler) updateMachine(c *gin.Context) {
	var upd models.MachineUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id := c.Param("id")
	if err := h.services.Machines.UpdateDetails(c.Request.Context(), id, upd); err != nil {
		if errors.Is(err, service.ErrUnknownMachine) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateMachine, "machine_update_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated, "id": id})
}

// @Summary      Change machine status
// @Description  STOPPED requires a reason; RUNNING closes the open downtime event.
// @Tags         machines
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "Machine id"
// @Param        body  body  SetStatusRequest  true  "Status payload"
// @Success      200  {object}  map[string]interface{}  "status, machine"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/machines/{id}/status [post]
func (h *Handler) setMachineStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	err := h.services.Transition.Set(ctx, service.TransitionParams{
		MachineID: id,
		Status:    req.Status,
		Reason:    req.Reason,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUnknownMachine):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrMissingReason), errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errSetStatus, "machine_status_failed", err, "id", id, "status", req.Status)
		return
	}

	resp := gin.H{"status": statusOK}
	if m, err := h.services.Machines.Get(ctx, id); err == nil {
		resp["machine"] = m
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Floor stats
// @Description  Running / incident-stopped / planned-stopped counters for the header cards.
// @Tags         machines
// @Produce      json
// @Param        area  query  int  false  "Factory area (1-3); omit for all"
// @Success      200  {object}  service.FloorStats
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/machines/stats [get]
func (h *Handler) floorStats(c *gin.Context) {
	area, ok := parseAreaQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidArea})
		return
	}
	stats, err := h.services.Machines.Stats(c.Request.Context(), area)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errFloorStats, "floor_stats_failed", err, "area", area)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      Stoppage reason taxonomy
// @Tags         machines
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "categories"
// @Router       /api/v1/reasons [get]
func (h *Handler) listReasons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": catalog.Reasons()})
}
