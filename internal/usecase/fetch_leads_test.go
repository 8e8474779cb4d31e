package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-prospector/internal/entity"
	"github.com/xavierca1/ligue-prospector/internal/infra/database"
	"github.com/xavierca1/ligue-prospector/internal/outreach"
)

func TestFetchLeadsRejectsInvalidZip(t *testing.T) {
	source := new(MockPropertySource)
	uc := NewFetchLeadsUseCase(source, new(MockGenerator), database.NewMemoryLeadRepository(), nil, nil, false, 5)

	for _, zip := range []string{"", "abc", "1234", "123456", "1234a", " 12345"} {
		t.Run(fmt.Sprintf("%q", zip), func(t *testing.T) {
			out, err := uc.Execute(context.Background(), zip)
			assert.Nil(t, out)

			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, CodeValidation, de.Code)
			assert.Equal(t, "Valid 5-digit ZIP code required", de.Message)
		})
	}
	source.AssertNotCalled(t, "FetchByZip", mock.Anything, mock.Anything)
}

func TestFetchLeadsDemoMode(t *testing.T) {
	repo := database.NewMemoryLeadRepository()
	source := new(MockPropertySource)
	uc := NewFetchLeadsUseCase(source, new(MockGenerator), repo, nil, nil, true, 5)
	uc.newRand = func() *rand.Rand { return rand.New(rand.NewSource(7)) }

	out, err := uc.Execute(context.Background(), "30301")
	require.NoError(t, err)

	assert.True(t, out.Demo)
	assert.Equal(t, DemoLeadCount, out.Count)
	require.Len(t, out.Leads, DemoLeadCount)
	for _, l := range out.Leads {
		assert.NotEmpty(t, l.ID)
		assert.Equal(t, "30301", l.ZipCode)
		assert.Equal(t, entity.IntentScore(float64(l.EquityPercent), float64(l.YearsOwned)), l.IntentScore)
		assert.True(t, l.Eligible(entity.ChannelEmail))
		assert.True(t, l.Eligible(entity.ChannelSMS))
	}

	stored, err := repo.ListByZip(context.Background(), "30301")
	require.NoError(t, err)
	assert.Len(t, stored, DemoLeadCount)
	source.AssertNotCalled(t, "FetchByZip", mock.Anything, mock.Anything)
}

func TestFetchLeadsLiveGeneratesOutreach(t *testing.T) {
	props := []entity.Property{
		{Address: "1 Oak St, Atlanta", OwnerName: "Smith, James", EquityPercent: 80, YearsOwned: 10},
		{Address: "2 Elm St, Atlanta", OwnerName: "Jones, Mary", EquityPercent: 100, YearsOwned: 25},
		{Address: "3 Pine St, Atlanta", OwnerName: "Lee, Ann", EquityPercent: 55, YearsOwned: 7},
	}

	source := new(MockPropertySource)
	source.On("FetchByZip", mock.Anything, "30301").Return(props, nil)

	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(f outreach.Facts) bool { return f.Address == "3 Pine St, Atlanta" })).
		Return(outreach.Messages{}, errors.New("model timeout"))
	gen.On("Generate", mock.Anything, mock.Anything).
		Return(outreach.Messages{EmailContent: "Dear owner", SMSContent: "Hi!"}, nil)

	repo := database.NewMemoryLeadRepository()
	uc := NewFetchLeadsUseCase(source, gen, repo, nil, nil, false, 2)

	out, err := uc.Execute(context.Background(), "30301")
	require.NoError(t, err)

	assert.False(t, out.Demo)
	require.Equal(t, 3, out.Count)

	assert.Equal(t, "1 Oak St, Atlanta", out.Leads[0].Address)
	assert.Equal(t, 68, out.Leads[0].IntentScore)
	require.NotNil(t, out.Leads[0].EmailContent)
	assert.Equal(t, "Dear owner", *out.Leads[0].EmailContent)
	assert.Equal(t, "Hi!", *out.Leads[0].SMSContent)

	assert.Equal(t, 100, out.Leads[1].IntentScore)

	assert.Nil(t, out.Leads[2].EmailContent)
	assert.Nil(t, out.Leads[2].SMSContent)
	assert.False(t, out.Leads[2].EmailSent)

	for _, l := range out.Leads {
		assert.NotEmpty(t, l.ID)
	}
	gen.AssertNumberOfCalls(t, "Generate", 3)
}

func TestFetchLeadsBoundsConcurrency(t *testing.T) {
	props := make([]entity.Property, 12)
	for i := range props {
		props[i] = entity.Property{Address: fmt.Sprintf("%d Oak St", i), EquityPercent: 60, YearsOwned: 8}
	}
	source := new(MockPropertySource)
	source.On("FetchByZip", mock.Anything, "30301").Return(props, nil)

	gen := &countingGenerator{delay: 5 * time.Millisecond}
	uc := NewFetchLeadsUseCase(source, gen, nil, nil, nil, false, 3)

	out, err := uc.Execute(context.Background(), "30301")
	require.NoError(t, err)
	assert.Equal(t, 12, out.Count)
	assert.LessOrEqual(t, gen.peak.Load(), int32(3))
	assert.Equal(t, int32(12), gen.calls.Load())
}

func TestFetchLeadsSourceFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"upstream", fmt.Errorf("%w: ATTOM API error: 500", entity.ErrUpstreamRequestFailed), CodeUpstream},
		{"missing key", fmt.Errorf("%w: ATTOM_API_KEY is not configured", entity.ErrConfigurationMissing), CodeConfigurationMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockPropertySource)
			source.On("FetchByZip", mock.Anything, "30301").Return(nil, tt.err)
			repo := new(MockLeadRepository)

			uc := NewFetchLeadsUseCase(source, new(MockGenerator), repo, nil, nil, false, 5)
			out, err := uc.Execute(context.Background(), "30301")
			assert.Nil(t, out)

			var te *TechnicalError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.code, te.Code)
			assert.ErrorIs(t, err, tt.err)
			repo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
		})
	}
}

func TestFetchLeadsSwallowsPersistenceFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("InsertBatch", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: insert leads: timeout", entity.ErrPersistenceFailed))

	uc := NewFetchLeadsUseCase(new(MockPropertySource), new(MockGenerator), repo, nil, nil, true, 5)
	out, err := uc.Execute(context.Background(), "30301")

	require.NoError(t, err)
	assert.Equal(t, DemoLeadCount, out.Count)
	assert.Empty(t, out.Leads[0].ID)
	repo.AssertExpectations(t)
}

func TestFetchLeadsUnavailableGenerator(t *testing.T) {
	source := new(MockPropertySource)
	source.On("FetchByZip", mock.Anything, "30301").Return([]entity.Property{{Address: "1 Oak St", EquityPercent: 70, YearsOwned: 9}}, nil)
	gen := UnavailableGenerator{Err: fmt.Errorf("%w: OPENAI_API_KEY is not configured", entity.ErrConfigurationMissing)}

	uc := NewFetchLeadsUseCase(source, gen, nil, nil, nil, false, 5)
	out, err := uc.Execute(context.Background(), "30301")

	require.NoError(t, err)
	require.Len(t, out.Leads, 1)
	assert.Nil(t, out.Leads[0].EmailContent)
}

func TestListSavedLeads(t *testing.T) {
	repo := database.NewMemoryLeadRepository()
	require.NoError(t, repo.InsertBatch(context.Background(), []entity.Lead{
		{ZipCode: "30301", IntentScore: 40},
		{ZipCode: "30301", IntentScore: 90},
		{ZipCode: "10001", IntentScore: 99},
	}))

	uc := NewListSavedLeadsUseCase(repo)
	out, err := uc.Execute(context.Background(), "30301")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 90, out.Leads[0].IntentScore)

	empty, err := uc.Execute(context.Background(), "99999")
	require.NoError(t, err)
	assert.NotNil(t, empty.Leads)
	assert.Zero(t, empty.Count)

	_, err = uc.Execute(context.Background(), "9999")
	assert.True(t, IsDomainError(err))
}

func TestListSavedLeadsRepositoryError(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListByZip", mock.Anything, "30301").Return(nil, entity.ErrPersistenceFailed)

	_, err := NewListSavedLeadsUseCase(repo).Execute(context.Background(), "30301")
	assert.True(t, IsTechnicalError(err))
	assert.ErrorIs(t, err, entity.ErrPersistenceFailed)
}

type countingGenerator struct {
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (g *countingGenerator) Generate(ctx context.Context, f outreach.Facts) (outreach.Messages, error) {
	g.calls.Add(1)
	n := g.inFlight.Add(1)
	defer g.inFlight.Add(-1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(g.delay)
	return outreach.Messages{EmailContent: "e", SMSContent: "s"}, nil
}
