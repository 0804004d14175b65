package handlers

import (
	"smartmolding/internal/logger"
	"smartmolding/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	// Live floor feed (HTTP upgrade), same port.
	router.GET("/ws", h.wsFloor)

	api := router.Group("/api/v1")
	{
		h.registerMachineRoutes(api)
		h.registerAnalyticsRoutes(api)
		h.registerHistoryRoutes(api)
		h.registerBulkRoutes(api)
	}

	return router
}

func (h *Handler) registerMachineRoutes(api *gin.RouterGroup) {
	machines := api.Group("/machines")
	{
		machines.GET("", h.listMachines)
		machines.GET("/stats", h.floorStats)
		machines.GET("/:id", h.getMachine)
		machines.PATCH("/:id", h.updateMachine)
		// Body example: {"status":"STOPPED","reason":"Bảo trì"}
		machines.POST("/:id/status", h.setMachineStatus)
	}
	api.GET("/reasons", h.listReasons)
}

func (h *Handler) registerAnalyticsRoutes(api *gin.RouterGroup) {
	api.GET("/analytics", h.getAnalytics)
}

func (h *Handler) registerHistoryRoutes(api *gin.RouterGroup) {
	history := api.Group("/history")
	{
		history.GET("", h.getHistory)
		history.GET("/export", h.exportHistory)
	}
}

func (h *Handler) registerBulkRoutes(api *gin.RouterGroup) {
	bulk := api.Group("/bulk")
	{
		bulk.POST("/match", h.bulkMatch)
		bulk.POST("/stop", h.bulkStop)
	}
}
