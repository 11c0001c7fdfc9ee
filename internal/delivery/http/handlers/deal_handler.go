package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/partnerdesk/deal-service/internal/delivery/http/dto"
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/usecase/conflict"
	"github.com/partnerdesk/deal-service/internal/usecase/validation"
)

type DealHandler struct {
	validationUc validation.ValidationUsecase
	conflictUc   conflict.ConflictUsecase
}

func NewDealHandler(validationUc validation.ValidationUsecase, conflictUc conflict.ConflictUsecase) *DealHandler {
	return &DealHandler{validationUc: validationUc, conflictUc: conflictUc}
}

func (h *DealHandler) ValidateDeal(c *gin.Context) {
	var req dto.ValidateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.validationUc.ValidateDeal(req.ToDomain())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DealHandler) DetectConflicts(c *gin.Context) {
	result, err := h.conflictUc.DetectConflictsForDeal(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateConflictRecords detects and persists in one pass, returning what was
// detected and how many records were stored.
func (h *DealHandler) CreateConflictRecords(c *gin.Context) {
	result, err := h.conflictUc.DetectConflictsForDeal(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.conflictUc.CreateConflictRecords(result.Conflicts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"has_conflicts":   result.HasConflicts,
		"conflicts":       result.Conflicts,
		"suggestions":     result.Suggestions,
		"records_created": created,
	})
}
