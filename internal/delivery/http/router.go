package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/partnerdesk/deal-service/internal/delivery/http/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	dealHandler *handlers.DealHandler,
	pricingHandler *handlers.PricingHandler,
	approvalHandler *handlers.ApprovalHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.POST("/deals/validate", dealHandler.ValidateDeal)
		v1.POST("/deals/:id/conflicts/detect", dealHandler.DetectConflicts)
		v1.POST("/deals/:id/conflicts", dealHandler.CreateConflictRecords)

		v1.POST("/pricing/calculate", pricingHandler.CalculatePrice)
		v1.GET("/pricing/availability", pricingHandler.CheckAvailability)

		v1.POST("/deals/:id/workflow", approvalHandler.DetermineWorkflow)
		v1.POST("/deals/:id/approval-actions", approvalHandler.ProcessApprovalAction)
		v1.POST("/approvals/bulk", approvalHandler.BulkApprove)
		v1.GET("/approvals/candidates", approvalHandler.GetBulkApprovalCandidates)
	}

	return router
}
