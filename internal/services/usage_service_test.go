package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"quizforge-api/internal/config"
	"quizforge-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUsageRepo implements repository.UsageRepository with the same atomic
// increment-or-create contract the SQL upsert provides.
type fakeUsageRepo struct {
	mu      sync.Mutex
	rows    map[string]*models.MonthlyUsage
	logs    []models.UsageLogEntry
	failGet error
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{rows: make(map[string]*models.MonthlyUsage)}
}

func usageKey(userID uuid.UUID, monthKey string) string {
	return userID.String() + "/" + monthKey
}

func (f *fakeUsageRepo) GetMonthlyUsage(ctx context.Context, userID uuid.UUID, monthKey string) (*models.MonthlyUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failGet != nil {
		return nil, f.failGet
	}

	row, ok := f.rows[usageKey(userID, monthKey)]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeUsageRepo) IncrementMonthlyUsage(ctx context.Context, userID uuid.UUID, monthKey string, cost float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := usageKey(userID, monthKey)
	if row, ok := f.rows[key]; ok {
		row.TotalPrompts++
		row.TotalCost += cost
		return nil
	}

	f.rows[key] = &models.MonthlyUsage{
		UserID:       userID,
		MonthKey:     monthKey,
		TotalPrompts: 1,
		TotalCost:    cost,
	}
	return nil
}

func (f *fakeUsageRepo) AppendLog(ctx context.Context, entry *models.UsageLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.logs = append(f.logs, *entry)
	return nil
}

func newTestUsageService(repo *fakeUsageRepo, now func() time.Time) *usageService {
	return &usageService{
		repo:        repo,
		quotaConfig: config.NewQuotaConfig(),
		now:         now,
	}
}

func fixedTime(value string) func() time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestRecordUsageCounterCorrectness(t *testing.T) {
	repo := newFakeUsageRepo()
	svc := newTestUsageService(repo, fixedTime("2026-09-01T12:00:00Z"))
	userID := uuid.New()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, svc.RecordUsage(ctx, userID, ActionQuizGeneration, "prompt", 0.01))

		stats, err := svc.GetUsage(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, i, stats.Used)
		assert.Equal(t, 10, stats.Limit)
		assert.Equal(t, 10-i, stats.Remaining)
	}

	assert.Len(t, repo.logs, 5)
	assert.Equal(t, "2026-09", repo.logs[0].MonthKey)
}

func TestGetUsageNoRecord(t *testing.T) {
	svc := newTestUsageService(newFakeUsageRepo(), fixedTime("2026-09-01T12:00:00Z"))

	stats, err := svc.GetUsage(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Used)
	assert.Equal(t, 10, stats.Limit)
	assert.Equal(t, 10, stats.Remaining)
}

func TestCheckLimitBoundary(t *testing.T) {
	repo := newFakeUsageRepo()
	svc := newTestUsageService(repo, fixedTime("2026-09-01T12:00:00Z"))
	userID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		require.NoError(t, svc.RecordUsage(ctx, userID, ActionQuizGeneration, "", 0))
	}

	// 9 used: one generation left.
	allowed, err := svc.CheckLimit(ctx, userID)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, svc.RecordUsage(ctx, userID, ActionQuizGeneration, "", 0))

	// 10 used: the limit is inclusive.
	allowed, err = svc.CheckLimit(ctx, userID)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCheckLimitResetsOnMonthRollover(t *testing.T) {
	repo := newFakeUsageRepo()
	svc := newTestUsageService(repo, fixedTime("2026-09-30T23:59:00Z"))
	userID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, svc.RecordUsage(ctx, userID, ActionQuizGeneration, "", 0))
	}

	allowed, err := svc.CheckLimit(ctx, userID)
	require.NoError(t, err)
	assert.False(t, allowed)

	svc.now = fixedTime("2026-10-01T00:01:00Z")

	allowed, err = svc.CheckLimit(ctx, userID)
	require.NoError(t, err)
	assert.True(t, allowed)

	stats, err := svc.GetUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Used)
}

func TestRecordUsageMonotonic(t *testing.T) {
	repo := newFakeUsageRepo()
	svc := newTestUsageService(repo, fixedTime("2026-09-01T12:00:00Z"))
	userID := uuid.New()
	ctx := context.Background()

	prevPrompts, prevCost := 0, 0.0
	for i := 0; i < 10; i++ {
		require.NoError(t, svc.RecordUsage(ctx, userID, ActionQuizGeneration, "", 0.5))

		row := repo.rows[usageKey(userID, "2026-09")]
		require.NotNil(t, row)
		assert.Greater(t, row.TotalPrompts, prevPrompts)
		assert.GreaterOrEqual(t, row.TotalCost, prevCost)
		prevPrompts, prevCost = row.TotalPrompts, row.TotalCost
	}
}

func TestRecordUsageConcurrentNoLostUpdates(t *testing.T) {
	repo := newFakeUsageRepo()
	svc := newTestUsageService(repo, fixedTime("2026-09-01T12:00:00Z"))
	userID := uuid.New()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.RecordUsage(ctx, userID, ActionQuizGeneration, "", 0.1))
		}()
	}
	wg.Wait()

	// A single row per (user, month), holding every increment.
	assert.Len(t, repo.rows, 1)
	stats, err := svc.GetUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, workers, stats.Used)
	assert.Len(t, repo.logs, workers)
}

func TestCheckLimitPropagatesStorageFailure(t *testing.T) {
	repo := newFakeUsageRepo()
	repo.failGet = fmt.Errorf("connection refused")
	svc := newTestUsageService(repo, fixedTime("2026-09-01T12:00:00Z"))

	// An unreadable usage row must never be treated as "no usage".
	allowed, err := svc.CheckLimit(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.False(t, allowed)

	_, err = svc.GetUsage(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestUsageIsPerUser(t *testing.T) {
	repo := newFakeUsageRepo()
	svc := newTestUsageService(repo, fixedTime("2026-09-01T12:00:00Z"))
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	for i := 0; i < 10; i++ {
		require.NoError(t, svc.RecordUsage(ctx, alice, ActionQuizGeneration, "", 0))
	}

	allowed, err := svc.CheckLimit(ctx, bob)
	require.NoError(t, err)
	assert.True(t, allowed)
}
