package conflict

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partnerdesk/deal-service/internal/domain"
)

type fakeDealRepo struct {
	deals   []*domain.Deal
	findErr error
}

func (f *fakeDealRepo) GetDealByID(dealID string) (*domain.Deal, error) {
	for _, d := range f.deals {
		if d.ID == dealID {
			return d, nil
		}
	}
	return nil, domain.ErrDealNotFound
}

func (f *fakeDealRepo) FindDeals(filter domain.DealWindowFilter) ([]*domain.Deal, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]*domain.Deal, 0, len(f.deals))
	for _, d := range f.deals {
		if d.ID == filter.ExcludeDealID {
			continue
		}
		if filter.PartnerID != "" && d.PartnerID != filter.PartnerID {
			continue
		}
		if !filter.Since.IsZero() && d.CreatedAt.Before(filter.Since) {
			continue
		}
		excluded := false
		for _, s := range filter.ExcludeStatus {
			if d.Status == s {
				excluded = true
			}
		}
		if excluded {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDealRepo) UpdateDealStatus(dealID string, status domain.DealStatus, subStatus domain.DealSubStatus) error {
	return nil
}

type fakeConflictRepo struct {
	created   []*domain.DealConflict
	createErr error
}

func (f *fakeConflictRepo) CreateConflict(c *domain.DealConflict) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, c)
	return nil
}

func (f *fakeConflictRepo) ListConflictsByDeal(dealID string) ([]*domain.DealConflict, error) {
	return f.created, nil
}

func testDeal(id, partnerID, company, territory string, value float64, createdAt time.Time) *domain.Deal {
	return &domain.Deal{
		ID:        id,
		PartnerID: partnerID,
		EndCustomer: domain.EndCustomer{
			CompanyName:  company,
			ContactEmail: company + "@example.com",
			Territory:    territory,
		},
		TotalValue: value,
		Status:     domain.StatusPending,
		CreatedAt:  createdAt,
	}
}

func TestDetectConflictsNormalizedDuplicate(t *testing.T) {
	now := time.Now()
	repo := &fakeDealRepo{deals: []*domain.Deal{
		testDeal("d2", "p2", "ACME Corporation", "Europe", 50000, now.AddDate(0, 0, -200)),
	}}
	uc := NewDefaultConflictUsecase(repo, &fakeConflictRepo{}, nil, nil)

	incoming := testDeal("d1", "p1", "Acme Corp", "APAC", 200000, now)
	res, err := uc.DetectConflicts(incoming)
	require.NoError(t, err)

	require.True(t, res.HasConflicts)
	require.Len(t, res.Conflicts, 1)
	c := res.Conflicts[0]
	assert.Equal(t, domain.ConflictDuplicateEndUser, c.Type)
	assert.Equal(t, domain.SeverityHigh, c.Severity)
	assert.Equal(t, 1.0, c.SimilarityScore)
	assert.Equal(t, "d2", c.ConflictingDealID)
}

func TestDetectConflictsRanking(t *testing.T) {
	now := time.Now()
	repo := &fakeDealRepo{deals: []*domain.Deal{
		// Different partner, overlapping territory, dissimilar name: medium territory overlap.
		testDeal("d2", "p2", "Globex", "USA", 8000, now.AddDate(0, 0, -200)),
		// Same name, same partner: high duplicate, plus timing within 7 days.
		testDeal("d3", "p1", "Acme Corp", "Europe", 10000, now.AddDate(0, 0, -3)),
	}}
	uc := NewDefaultConflictUsecase(repo, &fakeConflictRepo{}, nil, nil)

	incoming := testDeal("d1", "p1", "Acme Corp", "North America", 10000, now)
	res, err := uc.DetectConflicts(incoming)
	require.NoError(t, err)

	require.True(t, res.HasConflicts)
	require.GreaterOrEqual(t, len(res.Conflicts), 3)

	// High severity first, then type priority: duplicate before timing before
	// the medium territory overlap.
	assert.Equal(t, domain.ConflictDuplicateEndUser, res.Conflicts[0].Type)
	assert.Equal(t, domain.SeverityHigh, res.Conflicts[0].Severity)
	assert.Equal(t, domain.ConflictTiming, res.Conflicts[1].Type)
	assert.Equal(t, domain.SeverityHigh, res.Conflicts[1].Severity)
	assert.Equal(t, domain.ConflictTerritoryOverlap, res.Conflicts[2].Type)

	assert.NotEmpty(t, res.Suggestions)
}

func TestDetectConflictsTimingSeverityBands(t *testing.T) {
	now := time.Now()
	tests := []struct {
		daysApart int
		want      domain.ConflictSeverity
	}{
		{3, domain.SeverityHigh},
		{20, domain.SeverityMedium},
		{60, domain.SeverityLow},
	}
	for _, tt := range tests {
		repo := &fakeDealRepo{deals: []*domain.Deal{
			testDeal("d2", "p1", "Initech", "Europe", 10000, now.AddDate(0, 0, -tt.daysApart)),
		}}
		uc := NewDefaultConflictUsecase(repo, &fakeConflictRepo{}, nil, nil)

		res, err := uc.DetectConflicts(testDeal("d1", "p1", "Initech", "Europe", 11000, now))
		require.NoError(t, err)

		var timing *domain.DealConflict
		for _, c := range res.Conflicts {
			if c.Type == domain.ConflictTiming {
				timing = c
			}
		}
		require.NotNil(t, timing, "days apart %d", tt.daysApart)
		assert.Equal(t, tt.want, timing.Severity, "days apart %d", tt.daysApart)
	}
}

func TestDetectConflictsOutsideTimingWindow(t *testing.T) {
	now := time.Now()
	repo := &fakeDealRepo{deals: []*domain.Deal{
		testDeal("d2", "p2", "Completely Unrelated Firm", "APAC", 10000, now.AddDate(0, 0, -120)),
	}}
	uc := NewDefaultConflictUsecase(repo, &fakeConflictRepo{}, nil, nil)

	res, err := uc.DetectConflicts(testDeal("d1", "p1", "Initech", "Europe", 11000, now))
	require.NoError(t, err)
	assert.False(t, res.HasConflicts)
	assert.Empty(t, res.Conflicts)
}

func TestDetectConflictsStoreFailureIsAdvisory(t *testing.T) {
	repo := &fakeDealRepo{findErr: errors.New("connection refused")}
	uc := NewDefaultConflictUsecase(repo, &fakeConflictRepo{}, nil, nil)

	res, err := uc.DetectConflicts(testDeal("d1", "p1", "Acme", "Europe", 1000, time.Now()))
	require.NoError(t, err)
	assert.False(t, res.HasConflicts)
	assert.Empty(t, res.Conflicts)
}

func TestDetectConflictsForDeal(t *testing.T) {
	now := time.Now()
	repo := &fakeDealRepo{deals: []*domain.Deal{
		testDeal("d1", "p1", "Acme Corp", "Europe", 10000, now),
		testDeal("d2", "p2", "Acme Corporation", "Europe", 10000, now.AddDate(0, 0, -10)),
	}}
	uc := NewDefaultConflictUsecase(repo, &fakeConflictRepo{}, nil, nil)

	res, err := uc.DetectConflictsForDeal("d1")
	require.NoError(t, err)
	assert.True(t, res.HasConflicts)

	_, err = uc.DetectConflictsForDeal("missing")
	assert.True(t, errors.Is(err, domain.ErrDealNotFound))
}

func TestFindPartnerDuplicates(t *testing.T) {
	now := time.Now()
	repo := &fakeDealRepo{deals: []*domain.Deal{
		testDeal("d2", "p1", "Acme Corporation", "Europe", 9500, now.AddDate(0, 0, -30)),
		testDeal("d3", "p1", "Globex", "Europe", 10000, now.AddDate(0, 0, -30)),
		testDeal("d4", "p2", "Acme Corp", "Europe", 10000, now.AddDate(0, 0, -30)),
		testDeal("d5", "p1", "Acme Corp", "Europe", 10000, now.AddDate(0, 0, -120)),
	}}
	uc := NewDefaultConflictUsecase(repo, &fakeConflictRepo{}, nil, nil)

	matches, err := uc.FindPartnerDuplicates(testDeal("d1", "p1", "Acme Corp", "Europe", 10000, now))
	require.NoError(t, err)

	// Only the same-partner, in-window, similar-name deal qualifies.
	require.Len(t, matches, 1)
	assert.Equal(t, "d2", matches[0].DealID)
	assert.Equal(t, 1.0, matches[0].Similarity)
	assert.True(t, matches[0].ValueWithin20Pct)
}

func TestCreateConflictRecords(t *testing.T) {
	store := &fakeConflictRepo{}
	uc := NewDefaultConflictUsecase(&fakeDealRepo{}, store, nil, nil)

	created, err := uc.CreateConflictRecords([]*domain.DealConflict{
		{DealID: "d1", ConflictingDealID: "d2", Type: domain.ConflictDuplicateEndUser, Severity: domain.SeverityHigh},
		{DealID: "d1", ConflictingDealID: "d3", Type: domain.ConflictTiming, Severity: domain.SeverityLow},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	for _, c := range store.created {
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, domain.ResolutionOpen, c.Resolution)
		assert.False(t, c.CreatedAt.IsZero())
	}
}

func TestCreateConflictRecordsSkipsFailedRows(t *testing.T) {
	store := &fakeConflictRepo{createErr: errors.New("duplicate key value violates unique constraint")}
	uc := NewDefaultConflictUsecase(&fakeDealRepo{}, store, nil, nil)

	created, err := uc.CreateConflictRecords([]*domain.DealConflict{
		{DealID: "d1", ConflictingDealID: "d2", Type: domain.ConflictTiming},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}
