package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labequip/storefront/internal/config"
	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/domain/task"
	"labequip/storefront/internal/queue"
)

type fakeQueue struct {
	mu      sync.Mutex
	tasks   []task.Task
	acked   []string
	addErr  error
	pending map[string][]redis.XMessage
}

func (q *fakeQueue) AddTask(_ context.Context, t task.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.addErr != nil {
		return "", q.addErr
	}
	q.tasks = append(q.tasks, t)
	return "1-0", nil
}

func (q *fakeQueue) GetTask(ctx context.Context, _, _, stream string) (*redis.XMessage, error) {
	q.mu.Lock()
	msgs := q.pending[stream]
	if len(msgs) > 0 {
		q.pending[stream] = msgs[1:]
		q.mu.Unlock()
		return &msgs[0], nil
	}
	q.mu.Unlock()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Millisecond):
	}
	return nil, nil
}

func (q *fakeQueue) AckTask(_ context.Context, _, _, msgID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, msgID)
	return nil
}

func (q *fakeQueue) CreateGroup(context.Context, string, string) error { return nil }

func (q *fakeQueue) AutoClaim(context.Context, string, string, string, time.Duration) ([]redis.XMessage, error) {
	return nil, nil
}

func (q *fakeQueue) EnsureStreamsExist(context.Context) error { return nil }

func (q *fakeQueue) snapshot() ([]task.Task, []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]task.Task(nil), q.tasks...), append([]string(nil), q.acked...)
}

type outcome struct {
	status   domain.LeadStatus
	attempts int
	lastErr  string
}

type fakeRepository struct {
	mu       sync.Mutex
	saved    []domain.Lead
	outcomes map[string]outcome
	saveErr  error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{outcomes: make(map[string]outcome)}
}

func (r *fakeRepository) SaveLead(_ context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, *lead)
	return nil
}

func (r *fakeRepository) MarkDelivered(_ context.Context, id string, attempts int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[id] = outcome{status: domain.LeadStatusDelivered, attempts: attempts}
	return nil
}

func (r *fakeRepository) MarkFailed(_ context.Context, id string, attempts int, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[id] = outcome{status: domain.LeadStatusFailed, attempts: attempts, lastErr: lastError}
	return nil
}

func (r *fakeRepository) outcome(id string) (outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.outcomes[id]
	return o, ok
}

type fakeClient struct {
	mu        sync.Mutex
	err       error
	delivered []string
}

func (c *fakeClient) Deliver(_ context.Context, lead domain.Lead) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.delivered = append(c.delivered, lead.ID)
	return nil
}

func newTestService(repo *fakeRepository, client *fakeClient, q *fakeQueue, maxAttempts int) *LeadService {
	return NewLeadService(repo, client, q, "storefront_leads", 60, maxAttempts, 0)
}

func message(t *testing.T, id string, tk task.Task) redis.XMessage {
	t.Helper()
	data, err := tk.TaskValue()
	require.NoError(t, err)
	return redis.XMessage{
		ID: id,
		Values: map[string]interface{}{
			"task_type": tk.TaskType(),
			"task_data": string(data),
		},
	}
}

func testLead() domain.Lead {
	return domain.Lead{
		ID:    "lead-1",
		Name:  "Sara Ahmadi",
		Email: "sara@example.com",
		Items: []domain.LineItem{{ID: "ng-500", Name: "NG-500", Type: "nitrogen-gen", Grade: "NG-500"}},
	}
}

func TestSubmit_AcceptsAndSchedulesDelivery(t *testing.T) {
	repo, q := newFakeRepository(), &fakeQueue{}
	s := newTestService(repo, &fakeClient{}, q, 3)

	lead := &domain.Lead{Name: "Sara", Email: "sara@example.com", Equipment: "nitrogen generator"}
	require.NoError(t, s.Submit(context.Background(), lead))

	assert.NotEmpty(t, lead.ID)
	assert.False(t, lead.SubmittedAt.IsZero())
	assert.Equal(t, domain.LanguagePersian, lead.Language)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, lead.ID, repo.saved[0].ID)

	tasks, _ := q.snapshot()
	require.Len(t, tasks, 1)
	delivery, ok := tasks[0].(*task.LeadDeliveryTask)
	require.True(t, ok)
	assert.Equal(t, lead.ID, delivery.Lead.ID)
}

func TestSubmit_RejectsEmptyRequest(t *testing.T) {
	repo, q := newFakeRepository(), &fakeQueue{}
	s := newTestService(repo, &fakeClient{}, q, 3)

	err := s.Submit(context.Background(), &domain.Lead{Name: "Sara", Equipment: "   "})
	assert.ErrorIs(t, err, ErrEmptyRequest)
	assert.Empty(t, repo.saved)
}

func TestSubmit_SaveFailure(t *testing.T) {
	repo, q := newFakeRepository(), &fakeQueue{}
	repo.saveErr = errors.New("connection refused")
	s := newTestService(repo, &fakeClient{}, q, 3)

	lead := testLead()
	err := s.Submit(context.Background(), &lead)
	assert.ErrorIs(t, err, ErrUnavailable)

	tasks, _ := q.snapshot()
	assert.Empty(t, tasks)
}

func TestSubmit_EnqueueFailure(t *testing.T) {
	repo, q := newFakeRepository(), &fakeQueue{addErr: errors.New("redis down")}
	s := newTestService(repo, &fakeClient{}, q, 3)

	lead := testLead()
	err := s.Submit(context.Background(), &lead)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "redis down")
}

func TestProcessMessage_DeliverySuccess(t *testing.T) {
	repo, client, q := newFakeRepository(), &fakeClient{}, &fakeQueue{}
	s := newTestService(repo, client, q, 3)

	msg := message(t, "1-0", &task.LeadDeliveryTask{Lead: testLead()})
	require.NoError(t, s.processMessage(context.Background(), &msg))

	assert.Equal(t, []string{"lead-1"}, client.delivered)
	o, ok := repo.outcome("lead-1")
	require.True(t, ok)
	assert.Equal(t, domain.LeadStatusDelivered, o.status)
	assert.Equal(t, 1, o.attempts)

	tasks, acked := q.snapshot()
	assert.Empty(t, tasks)
	assert.Equal(t, []string{"1-0"}, acked)
}

func TestProcessMessage_DeliveryFailureSchedulesRetry(t *testing.T) {
	repo, q := newFakeRepository(), &fakeQueue{}
	s := newTestService(repo, &fakeClient{err: errors.New("HTTP error: 502")}, q, 3)

	msg := message(t, "1-0", &task.LeadDeliveryTask{Lead: testLead()})
	require.NoError(t, s.processMessage(context.Background(), &msg))

	tasks, acked := q.snapshot()
	require.Len(t, tasks, 1)
	retry, ok := tasks[0].(*task.LeadRetryTask)
	require.True(t, ok)
	assert.Equal(t, 1, retry.RetryCount)
	assert.Equal(t, "HTTP error: 502", retry.Error)
	assert.Equal(t, []string{"1-0"}, acked)

	_, marked := repo.outcome("lead-1")
	assert.False(t, marked)
}

func TestProcessMessage_RetryGivesUpAtMaxAttempts(t *testing.T) {
	repo, q := newFakeRepository(), &fakeQueue{}
	s := newTestService(repo, &fakeClient{err: errors.New("HTTP error: 502")}, q, 3)

	msg := message(t, "2-0", &task.LeadRetryTask{Lead: testLead(), RetryCount: 2, Error: "HTTP error: 502"})
	require.NoError(t, s.processMessage(context.Background(), &msg))

	tasks, acked := q.snapshot()
	assert.Empty(t, tasks)
	assert.Equal(t, []string{"2-0"}, acked)

	o, ok := repo.outcome("lead-1")
	require.True(t, ok)
	assert.Equal(t, domain.LeadStatusFailed, o.status)
	assert.Equal(t, 3, o.attempts)
	assert.Equal(t, "HTTP error: 502", o.lastErr)
}

func TestProcessMessage_RetrySuccess(t *testing.T) {
	repo, q := newFakeRepository(), &fakeQueue{}
	s := newTestService(repo, &fakeClient{}, q, 5)

	msg := message(t, "3-0", &task.LeadRetryTask{Lead: testLead(), RetryCount: 1})
	require.NoError(t, s.processMessage(context.Background(), &msg))

	o, ok := repo.outcome("lead-1")
	require.True(t, ok)
	assert.Equal(t, domain.LeadStatusDelivered, o.status)
	assert.Equal(t, 2, o.attempts)
}

func TestProcessMessage_RetryWaitCancelledLeavesMessagePending(t *testing.T) {
	repo, q := newFakeRepository(), &fakeQueue{}
	s := NewLeadService(repo, &fakeClient{}, q, "storefront_leads", 60, 5, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := message(t, "4-0", &task.LeadRetryTask{Lead: testLead(), RetryCount: 1})
	err := s.processMessage(ctx, &msg)
	assert.ErrorIs(t, err, context.Canceled)

	_, acked := q.snapshot()
	assert.Empty(t, acked)
}

func TestProcessMessage_InvalidMessage(t *testing.T) {
	s := newTestService(newFakeRepository(), &fakeClient{}, &fakeQueue{}, 3)

	err := s.processMessage(context.Background(), &redis.XMessage{ID: "5-0", Values: map[string]interface{}{}})
	assert.Error(t, err)

	err = s.processMessage(context.Background(), &redis.XMessage{ID: "6-0", Values: map[string]interface{}{
		"task_type": "CatalogPageTask",
		"task_data": "{}",
	}})
	assert.ErrorContains(t, err, "unknown task type")
}

func TestBackoff(t *testing.T) {
	s := NewLeadService(newFakeRepository(), &fakeClient{}, &fakeQueue{}, "g", 60, 5, 10*time.Second)

	assert.Equal(t, 10*time.Second, s.backoff(1))
	assert.Equal(t, 30*time.Second, s.backoff(3))
	assert.Equal(t, config.MaxRetryDelay, s.backoff(100))
}

func TestRunWorkers_DeliversQueuedLead(t *testing.T) {
	repo, client := newFakeRepository(), &fakeClient{}
	deliveryStream := queue.StreamName((&task.LeadDeliveryTask{}).TaskType())
	q := &fakeQueue{pending: map[string][]redis.XMessage{
		deliveryStream: {message(t, "7-0", &task.LeadDeliveryTask{Lead: testLead()})},
	}}
	s := newTestService(repo, client, q, 3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunWorkers(ctx, 2) }()

	assert.Eventually(t, func() bool {
		_, acked := q.snapshot()
		return len(acked) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after cancellation")
	}

	o, ok := repo.outcome("lead-1")
	require.True(t, ok)
	assert.Equal(t, domain.LeadStatusDelivered, o.status)
}
