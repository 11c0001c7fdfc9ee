package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partnerdesk/deal-service/internal/domain"
)

type fakeDealRepo struct {
	deals map[string]*domain.Deal
}

func (f *fakeDealRepo) GetDealByID(dealID string) (*domain.Deal, error) {
	d, ok := f.deals[dealID]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	return d, nil
}

func (f *fakeDealRepo) FindDeals(filter domain.DealWindowFilter) ([]*domain.Deal, error) {
	return nil, nil
}

func (f *fakeDealRepo) UpdateDealStatus(dealID string, status domain.DealStatus, subStatus domain.DealSubStatus) error {
	d, ok := f.deals[dealID]
	if !ok {
		return domain.ErrDealNotFound
	}
	d.Status = status
	d.SubStatus = subStatus
	return nil
}

type fakePartnerRepo struct {
	partners map[string]*domain.Partner
}

func (f *fakePartnerRepo) GetPartnerByID(partnerID string) (*domain.Partner, error) {
	p, ok := f.partners[partnerID]
	if !ok {
		return nil, domain.ErrPartnerNotFound
	}
	return p, nil
}

type fakeWorkflowRepo struct {
	workflows []*domain.ApprovalWorkflow
}

func (f *fakeWorkflowRepo) ListActiveWorkflows() ([]*domain.ApprovalWorkflow, error) {
	return f.workflows, nil
}

func (f *fakeWorkflowRepo) GetWorkflowByID(workflowID string) (*domain.ApprovalWorkflow, error) {
	for _, wf := range f.workflows {
		if wf.ID == workflowID {
			return wf, nil
		}
	}
	return nil, domain.ErrNoWorkflowAvailable
}

// fakeApprovalRepo mimics the store's single-unresolved-row constraint.
type fakeApprovalRepo struct {
	approvals []*domain.DealApproval
}

func (f *fakeApprovalRepo) CreateApproval(approval *domain.DealApproval) error {
	for _, a := range f.approvals {
		if a.DealID == approval.DealID && a.ApprovedAt == nil && approval.ApprovedAt == nil {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	cp := *approval
	f.approvals = append(f.approvals, &cp)
	return nil
}

func (f *fakeApprovalRepo) GetCurrentApproval(dealID string) (*domain.DealApproval, error) {
	var current *domain.DealApproval
	for _, a := range f.approvals {
		if a.DealID != dealID || a.ApprovedAt != nil {
			continue
		}
		if current == nil || a.StepNumber > current.StepNumber {
			current = a
		}
	}
	if current == nil {
		return nil, domain.ErrNoPendingApproval
	}
	return current, nil
}

func (f *fakeApprovalRepo) ResolveApproval(approvalID, approverID string, action domain.ApprovalAction, comments string) error {
	for _, a := range f.approvals {
		if a.ID == approvalID && a.ApprovedAt == nil {
			now := time.Now()
			a.ApproverID = approverID
			a.Action = action
			a.Comments = comments
			a.ApprovedAt = &now
			return nil
		}
	}
	return domain.ErrNoPendingApproval
}

func (f *fakeApprovalRepo) ListApprovalsByDeal(dealID string) ([]*domain.DealApproval, error) {
	out := make([]*domain.DealApproval, 0)
	for _, a := range f.approvals {
		if a.DealID == dealID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApprovalRepo) FindPendingByRole(role domain.ApprovalRole) ([]*domain.DealApproval, error) {
	out := make([]*domain.DealApproval, 0)
	for _, a := range f.approvals {
		if a.ApprovedAt == nil && a.RequiredRole == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApprovalRepo) unresolvedCount(dealID string) int {
	n := 0
	for _, a := range f.approvals {
		if a.DealID == dealID && a.ApprovedAt == nil {
			n++
		}
	}
	return n
}

type fakeHistoryRepo struct {
	entries []*domain.DealStatusHistory
}

func (f *fakeHistoryRepo) AppendStatusHistory(entry *domain.DealStatusHistory) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakePublisher struct {
	published []domain.Message
}

func (f *fakePublisher) PublishDealEvent(topic string, msgs ...domain.Message) error {
	f.published = append(f.published, msgs...)
	return nil
}

func threshold(v float64) *float64 { return &v }

type env struct {
	deals     *fakeDealRepo
	partners  *fakePartnerRepo
	workflows *fakeWorkflowRepo
	approvals *fakeApprovalRepo
	history   *fakeHistoryRepo
	publisher *fakePublisher
}

func newEnv() *env {
	return &env{
		deals: &fakeDealRepo{deals: map[string]*domain.Deal{
			"d1": {ID: "d1", PartnerID: "p1", TotalValue: 5_000_000, Status: domain.StatusPending},
		}},
		partners: &fakePartnerRepo{partners: map[string]*domain.Partner{
			"p1": {ID: "p1", Tier: domain.TierGold, Territory: "Europe"},
		}},
		workflows: &fakeWorkflowRepo{workflows: []*domain.ApprovalWorkflow{
			{
				ID:        "wf1",
				Name:      "standard",
				IsDefault: true,
				IsActive:  true,
				Steps: []domain.ApprovalStep{
					{StepNumber: 1, RequiredRole: domain.RoleStaff, Required: true, AutoApproveThreshold: threshold(10_000)},
					{StepNumber: 2, RequiredRole: domain.RoleManager, Required: true},
					{StepNumber: 3, RequiredRole: domain.RoleAdmin, Required: true},
				},
			},
		}},
		approvals: &fakeApprovalRepo{},
		history:   &fakeHistoryRepo{},
		publisher: &fakePublisher{},
	}
}

func (e *env) usecase() *DefaultWorkflowUsecase {
	return NewDefaultWorkflowUsecase(e.deals, e.partners, e.workflows, e.approvals, e.history, e.publisher, nil, nil)
}

func TestDetermineWorkflowHighValueNotAutoApproved(t *testing.T) {
	e := newEnv()
	uc := e.usecase()

	res, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	// 5,000,000 is far above the 10,000 threshold: the first pending step is
	// created instead of an auto-approval.
	assert.False(t, res.AutoApproved)
	assert.Equal(t, "wf1", res.WorkflowID)

	deal := e.deals.deals["d1"]
	assert.Equal(t, domain.StatusPending, deal.Status)
	assert.Equal(t, domain.SubStatusStaffReview, deal.SubStatus)

	current, err := e.approvals.GetCurrentApproval("d1")
	require.NoError(t, err)
	assert.Equal(t, 1, current.StepNumber)
	assert.Equal(t, domain.RoleStaff, current.RequiredRole)
}

func TestDetermineWorkflowAutoApproveAtThreshold(t *testing.T) {
	e := newEnv()
	e.deals.deals["d1"].TotalValue = 10_000
	uc := e.usecase()

	res, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	assert.True(t, res.AutoApproved)
	deal := e.deals.deals["d1"]
	assert.Equal(t, domain.StatusApproved, deal.Status)
	assert.Equal(t, domain.SubStatusAutoApproved, deal.SubStatus)

	// The approval row is already resolved; nothing is pending.
	_, err = e.approvals.GetCurrentApproval("d1")
	assert.True(t, errors.Is(err, domain.ErrNoPendingApproval))
	assert.Equal(t, 0, e.approvals.unresolvedCount("d1"))
	assert.Len(t, e.publisher.published, 1)
}

func TestDetermineWorkflowJustAboveThreshold(t *testing.T) {
	e := newEnv()
	e.deals.deals["d1"].TotalValue = 10_000.01
	uc := e.usecase()

	res, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)
	assert.False(t, res.AutoApproved)
}

func TestDetermineWorkflowSelectsByConditions(t *testing.T) {
	e := newEnv()
	e.workflows.workflows = append([]*domain.ApprovalWorkflow{
		{
			ID:       "wf-big",
			Name:     "large deals",
			IsActive: true,
			Conditions: domain.WorkflowConditions{
				MinValue: 1_000_000,
				Tiers:    []domain.PartnerTier{domain.TierGold},
			},
			Steps: []domain.ApprovalStep{
				{StepNumber: 1, RequiredRole: domain.RoleManager, Required: true},
			},
		},
	}, e.workflows.workflows...)
	uc := e.usecase()

	res, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	assert.Equal(t, "wf-big", res.WorkflowID)
	assert.Equal(t, domain.SubStatusManagerReview, e.deals.deals["d1"].SubStatus)
}

func TestDetermineWorkflowTerminalDeal(t *testing.T) {
	e := newEnv()
	e.deals.deals["d1"].Status = domain.StatusApproved
	uc := e.usecase()

	_, err := uc.DetermineWorkflow("d1")
	assert.True(t, errors.Is(err, domain.ErrDealTerminal))
}

func TestProcessApprovalActionAdvances(t *testing.T) {
	e := newEnv()
	uc := e.usecase()
	_, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	res, err := uc.ProcessApprovalAction(ApprovalActionInput{
		DealID: "d1", ApproverID: "u-staff", Action: domain.ActionApprove,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, res.Status)
	assert.Equal(t, domain.SubStatusManagerReview, res.SubStatus)
	assert.Equal(t, 1, e.approvals.unresolvedCount("d1"))

	current, err := e.approvals.GetCurrentApproval("d1")
	require.NoError(t, err)
	assert.Equal(t, 2, current.StepNumber)
}

func TestProcessApprovalActionFinalStepApproves(t *testing.T) {
	e := newEnv()
	uc := e.usecase()
	_, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	for _, approver := range []string{"u-staff", "u-manager", "u-admin"} {
		_, err = uc.ProcessApprovalAction(ApprovalActionInput{
			DealID: "d1", ApproverID: approver, Action: domain.ActionApprove,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, domain.StatusApproved, e.deals.deals["d1"].Status)
	assert.Equal(t, 0, e.approvals.unresolvedCount("d1"))

	_, err = uc.ProcessApprovalAction(ApprovalActionInput{
		DealID: "d1", ApproverID: "u-admin", Action: domain.ActionApprove,
	})
	assert.True(t, errors.Is(err, domain.ErrDealTerminal))
}

func TestProcessApprovalActionReject(t *testing.T) {
	e := newEnv()
	uc := e.usecase()
	_, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	res, err := uc.ProcessApprovalAction(ApprovalActionInput{
		DealID: "d1", ApproverID: "u-staff", Action: domain.ActionReject, Comments: "pricing unacceptable",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, res.Status)
	assert.Equal(t, domain.StatusRejected, e.deals.deals["d1"].Status)
	assert.Equal(t, 0, e.approvals.unresolvedCount("d1"))
}

func TestProcessApprovalActionRequestChanges(t *testing.T) {
	e := newEnv()
	uc := e.usecase()
	_, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	res, err := uc.ProcessApprovalAction(ApprovalActionInput{
		DealID: "d1", ApproverID: "u-staff", Action: domain.ActionRequestChanges, Comments: "need end customer contact",
	})
	require.NoError(t, err)

	// Non-terminal: the deal goes back to validation and stays workable.
	assert.Equal(t, domain.StatusPending, res.Status)
	assert.Equal(t, domain.SubStatusValidationPending, res.SubStatus)
	assert.False(t, e.deals.deals["d1"].Status.IsTerminal())
}

func TestProcessApprovalActionEscalate(t *testing.T) {
	e := newEnv()
	uc := e.usecase()
	_, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	res, err := uc.ProcessApprovalAction(ApprovalActionInput{
		DealID: "d1", ApproverID: "u-staff", Action: domain.ActionEscalate, EscalateToID: "u-admin",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SubStatusEscalated, res.SubStatus)

	current, err := e.approvals.GetCurrentApproval("d1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, current.RequiredRole)
	assert.Equal(t, 3, current.StepNumber)
	assert.Equal(t, "u-admin", current.AssignedTo)
	assert.Equal(t, 1, e.approvals.unresolvedCount("d1"))
}

func TestProcessApprovalActionNoPendingStep(t *testing.T) {
	e := newEnv()
	uc := e.usecase()

	_, err := uc.ProcessApprovalAction(ApprovalActionInput{
		DealID: "d1", ApproverID: "u-staff", Action: domain.ActionApprove,
	})
	assert.True(t, errors.Is(err, domain.ErrNoPendingApproval))
}

func TestBulkApprovePartialFailure(t *testing.T) {
	e := newEnv()
	e.deals.deals["d2"] = &domain.Deal{ID: "d2", PartnerID: "p1", TotalValue: 20_000, Status: domain.StatusPending}
	uc := e.usecase()

	// Only d1 gets a pending step; d2 has nothing to approve.
	_, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	res, err := uc.BulkApprove([]string{"d1", "d2"}, "u-staff", "batch cleanup")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Deal d2: No pending approval found", res.Errors[0])
}

func TestBulkApproveAllSucceed(t *testing.T) {
	e := newEnv()
	e.deals.deals["d2"] = &domain.Deal{ID: "d2", PartnerID: "p1", TotalValue: 30_000, Status: domain.StatusPending}
	uc := e.usecase()

	for _, id := range []string{"d1", "d2"} {
		_, err := uc.DetermineWorkflow(id)
		require.NoError(t, err)
	}

	res, err := uc.BulkApprove([]string{"d1", "d2"}, "u-staff", "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Empty(t, res.Errors)
}

func TestGetBulkApprovalCandidates(t *testing.T) {
	e := newEnv()
	e.deals.deals["d2"] = &domain.Deal{ID: "d2", PartnerID: "p1", TotalValue: 30_000, Status: domain.StatusPending}
	uc := e.usecase()

	for _, id := range []string{"d1", "d2"} {
		_, err := uc.DetermineWorkflow(id)
		require.NoError(t, err)
	}
	// Advance d2 past the staff step so only d1 remains in the staff queue.
	_, err := uc.ProcessApprovalAction(ApprovalActionInput{
		DealID: "d2", ApproverID: "u-staff", Action: domain.ActionApprove,
	})
	require.NoError(t, err)

	staff, err := uc.GetBulkApprovalCandidates(domain.RoleStaff)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "d1", staff[0].ID)

	managers, err := uc.GetBulkApprovalCandidates(domain.RoleManager)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "d2", managers[0].ID)
}

func TestSingleUnresolvedRowInvariant(t *testing.T) {
	e := newEnv()
	uc := e.usecase()
	_, err := uc.DetermineWorkflow("d1")
	require.NoError(t, err)

	// A second initialization must hit the unresolved-row constraint.
	err = uc.InitializeWorkflow("d1", "wf1")
	require.Error(t, err)
	assert.Equal(t, 1, e.approvals.unresolvedCount("d1"))
}
