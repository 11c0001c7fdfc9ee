package workflow

import (
	"errors"
	"unicode"

	"github.com/partnerdesk/deal-service/internal/domain"
)

// BulkApprove applies an approve action per deal independently, collecting
// per-deal failures without aborting the batch.
func (uc *DefaultWorkflowUsecase) BulkApprove(dealIDs []string, approverID, comments string) (*BulkResult, error) {
	result := &BulkResult{Errors: []string{}}
	for _, dealID := range dealIDs {
		_, err := uc.ProcessApprovalAction(ApprovalActionInput{
			DealID:     dealID,
			ApproverID: approverID,
			Action:     domain.ActionApprove,
			Comments:   comments,
		})
		if err != nil {
			result.Errors = append(result.Errors, "Deal "+dealID+": "+capitalize(bulkErrorMessage(err)))
			continue
		}
		result.Processed++
	}

	if uc.metrics != nil {
		uc.metrics.RecordBulkApproval(len(dealIDs), result.Processed)
	}
	return result, nil
}

// GetBulkApprovalCandidates lists deals whose current unresolved step requires
// the given role, for queue-style review.
func (uc *DefaultWorkflowUsecase) GetBulkApprovalCandidates(role domain.ApprovalRole) ([]*domain.Deal, error) {
	pending, err := uc.approvalRepo.FindPendingByRole(role)
	if err != nil {
		return nil, err
	}

	deals := make([]*domain.Deal, 0, len(pending))
	for _, approval := range pending {
		deal, err := uc.dealRepo.GetDealByID(approval.DealID)
		if err != nil {
			uc.logger.Warn("candidate deal lookup failed", "deal_id", approval.DealID, "error", err.Error())
			continue
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

func bulkErrorMessage(err error) string {
	if errors.Is(err, domain.ErrNoPendingApproval) {
		return domain.ErrNoPendingApproval.Error()
	}
	if errors.Is(err, domain.ErrDealTerminal) {
		return domain.ErrDealTerminal.Error()
	}
	if errors.Is(err, domain.ErrDealNotFound) {
		return domain.ErrDealNotFound.Error()
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
