package workflow

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/partnerdesk/deal-service/internal/domain"
	"github.com/partnerdesk/deal-service/internal/infrastructure/metrics"
)

const dealEventsTopic = "deal-events"

type ApprovalActionInput struct {
	DealID       string
	ApproverID   string
	Action       domain.ApprovalAction
	Comments     string
	EscalateToID string
}

type ActionResult struct {
	DealID    string               `json:"deal_id"`
	Action    domain.ApprovalAction `json:"action"`
	Status    domain.DealStatus    `json:"status"`
	SubStatus domain.DealSubStatus `json:"sub_status"`
	Message   string               `json:"message"`
}

type DetermineResult struct {
	WorkflowID   string `json:"workflow_id"`
	WorkflowName string `json:"workflow_name"`
	AutoApproved bool   `json:"auto_approved"`
}

type BulkResult struct {
	Processed int      `json:"processed"`
	Errors    []string `json:"errors"`
}

type WorkflowUsecase interface {
	DetermineWorkflow(dealID string) (*DetermineResult, error)
	InitializeWorkflow(dealID, workflowID string) error
	ProcessApprovalAction(input ApprovalActionInput) (*ActionResult, error)
	BulkApprove(dealIDs []string, approverID, comments string) (*BulkResult, error)
	GetBulkApprovalCandidates(role domain.ApprovalRole) ([]*domain.Deal, error)
}

type DefaultWorkflowUsecase struct {
	dealRepo     domain.DealRepository
	partnerRepo  domain.PartnerRepository
	workflowRepo domain.WorkflowRepository
	approvalRepo domain.ApprovalRepository
	historyRepo  domain.StatusHistoryRepository
	publisher    domain.DealEventPublisher
	metrics      *metrics.DealMetrics
	logger       *slog.Logger
}

func NewDefaultWorkflowUsecase(
	dealRepo domain.DealRepository,
	partnerRepo domain.PartnerRepository,
	workflowRepo domain.WorkflowRepository,
	approvalRepo domain.ApprovalRepository,
	historyRepo domain.StatusHistoryRepository,
	publisher domain.DealEventPublisher,
	dealMetrics *metrics.DealMetrics,
	logger *slog.Logger,
) *DefaultWorkflowUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultWorkflowUsecase{
		dealRepo:     dealRepo,
		partnerRepo:  partnerRepo,
		workflowRepo: workflowRepo,
		approvalRepo: approvalRepo,
		historyRepo:  historyRepo,
		publisher:    publisher,
		metrics:      dealMetrics,
		logger:       logger,
	}
}

func newID() (string, error) {
	gen, err := nanoid.Standard(15)
	if err != nil {
		return "", err
	}
	return gen(), nil
}

// appendHistory writes the audit trail entry; failures are logged, never
// propagated, so a history hiccup cannot wedge a transition.
func (uc *DefaultWorkflowUsecase) appendHistory(deal *domain.Deal, from, to domain.DealStatus, sub domain.DealSubStatus, actorID, note string) {
	id, err := newID()
	if err != nil {
		uc.logger.Warn("status history id generation failed", "deal_id", deal.ID, "error", err.Error())
		return
	}
	entry := &domain.DealStatusHistory{
		ID:         id,
		DealID:     deal.ID,
		FromStatus: from,
		ToStatus:   to,
		SubStatus:  sub,
		ActorID:    actorID,
		Note:       note,
		CreatedAt:  time.Now(),
	}
	if err := uc.historyRepo.AppendStatusHistory(entry); err != nil {
		uc.logger.Warn("status history append failed", "deal_id", deal.ID, "error", err.Error())
	}
}

type dealEvent struct {
	DealID     string  `json:"deal_id"`
	PartnerID  string  `json:"partner_id"`
	Status     string  `json:"status"`
	SubStatus  string  `json:"sub_status"`
	Action     string  `json:"action"`
	TotalValue float64 `json:"total_value"`
	OccurredAt string  `json:"occurred_at"`
}

func (uc *DefaultWorkflowUsecase) publishTransition(deal *domain.Deal, status domain.DealStatus, sub domain.DealSubStatus, action domain.ApprovalAction) {
	if uc.publisher == nil {
		return
	}
	payload, err := json.Marshal(dealEvent{
		DealID:     deal.ID,
		PartnerID:  deal.PartnerID,
		Status:     string(status),
		SubStatus:  string(sub),
		Action:     string(action),
		TotalValue: deal.TotalValue,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		uc.logger.Warn("deal event marshal failed", "deal_id", deal.ID, "error", err.Error())
		return
	}
	if err := uc.publisher.PublishDealEvent(dealEventsTopic, domain.Message{Key: []byte(deal.ID), Value: payload}); err != nil {
		uc.logger.Warn("deal event publish failed", "deal_id", deal.ID, "error", err.Error())
	}
}

func (uc *DefaultWorkflowUsecase) recordAction(action domain.ApprovalAction) {
	if uc.metrics != nil {
		uc.metrics.RecordApprovalAction(string(action))
	}
}
