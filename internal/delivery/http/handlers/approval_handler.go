package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/partnerdesk/deal-service/internal/delivery/http/dto"
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/usecase/workflow"
)

type ApprovalHandler struct {
	workflowUc workflow.WorkflowUsecase
}

func NewApprovalHandler(workflowUc workflow.WorkflowUsecase) *ApprovalHandler {
	return &ApprovalHandler{workflowUc: workflowUc}
}

func (h *ApprovalHandler) DetermineWorkflow(c *gin.Context) {
	result, err := h.workflowUc.DetermineWorkflow(c.Param("id"))
	if err != nil {
		c.JSON(workflowErrorStatus(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ApprovalHandler) ProcessApprovalAction(c *gin.Context) {
	var req dto.ApprovalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.workflowUc.ProcessApprovalAction(workflow.ApprovalActionInput{
		DealID:       c.Param("id"),
		ApproverID:   req.ApproverID,
		Action:       domain.ApprovalAction(req.Action),
		Comments:     req.Comments,
		EscalateToID: req.EscalateToID,
	})
	if err != nil {
		c.JSON(workflowErrorStatus(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ApprovalHandler) BulkApprove(c *gin.Context) {
	var req dto.BulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.workflowUc.BulkApprove(req.DealIDs, req.ApproverID, req.Comments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ApprovalHandler) GetBulkApprovalCandidates(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "role is required"})
		return
	}

	deals, err := h.workflowUc.GetBulkApprovalCandidates(domain.ApprovalRole(role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals, "total": len(deals)})
}

func workflowErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrDealNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoPendingApproval), errors.Is(err, domain.ErrDealTerminal):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoWorkflowAvailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
