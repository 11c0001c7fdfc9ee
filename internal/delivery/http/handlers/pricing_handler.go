package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/partnerdesk/deal-service/internal/delivery/http/dto"
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/usecase/pricing"
)

type PricingHandler struct {
	pricingUc pricing.PricingUsecase
}

func NewPricingHandler(pricingUc pricing.PricingUsecase) *PricingHandler {
	return &PricingHandler{pricingUc: pricingUc}
}

func (h *PricingHandler) CalculatePrice(c *gin.Context) {
	var req dto.CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	pctx := domain.PricingContext{
		Quantity:           req.Quantity,
		PartnerTier:        domain.PartnerTier(req.PartnerTier),
		Territory:          req.Territory,
		IsDealRegistration: req.IsDealRegistration,
		DealValue:          req.DealValue,
	}
	if req.CalculationDate != "" {
		date, err := time.Parse(time.RFC3339, req.CalculationDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "calculation_date must be RFC3339"})
			return
		}
		pctx.CalculationDate = date
	}

	result, err := h.pricingUc.CalculatePrice(req.ProductID, pctx)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PricingHandler) CheckAvailability(c *gin.Context) {
	productID := c.Query("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "product_id is required"})
		return
	}

	result, err := h.pricingUc.CheckProductAvailability(
		productID,
		c.Query("territory"),
		domain.PartnerTier(c.Query("partner_tier")),
	)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
