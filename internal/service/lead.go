package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"labequip/storefront/internal/config"
	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/domain/task"
	"labequip/storefront/internal/intake"
	"labequip/storefront/internal/metrics"
	"labequip/storefront/internal/queue"
	"labequip/storefront/internal/repository"
)

var (
	ErrEmptyRequest = errors.New("quote request needs equipment or at least one item")
	ErrUnavailable  = errors.New("quote intake is temporarily unavailable")
)

type LeadService struct {
	repository  repository.LeadRepository
	client      intake.Client
	queue       queue.Queue
	groupName   string
	minIdleTime time.Duration
	maxAttempts int
	retryDelay  time.Duration
}

func NewLeadService(
	repository repository.LeadRepository,
	client intake.Client,
	queue queue.Queue,
	groupName string,
	minIdleTime int,
	maxAttempts int,
	retryDelay time.Duration,
) *LeadService {
	idle := time.Duration(minIdleTime) * time.Second
	if idle <= 0 {
		idle = time.Minute
	}

	return &LeadService{
		repository:  repository,
		client:      client,
		queue:       queue,
		groupName:   groupName,
		minIdleTime: idle,
		maxAttempts: max(1, maxAttempts),
		retryDelay:  retryDelay,
	}
}

// Submit accepts a quote request: it assigns an id, stores the lead and schedules its delivery.
// Any error other than ErrEmptyRequest wraps ErrUnavailable.
func (s *LeadService) Submit(ctx context.Context, lead *domain.Lead) error {
	if strings.TrimSpace(lead.Equipment) == "" && len(lead.Items) == 0 {
		return ErrEmptyRequest
	}

	lead.ID = uuid.NewString()
	lead.SubmittedAt = time.Now().UTC()
	if lead.Language == "" {
		lead.Language = domain.LanguagePersian
	}

	if err := s.repository.SaveLead(ctx, lead); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if _, err := s.queue.AddTask(ctx, &task.LeadDeliveryTask{Lead: *lead}); err != nil {
		return fmt.Errorf("%w: failed to schedule delivery: %w", ErrUnavailable, err)
	}

	metrics.LeadsSubmitted.Inc()
	log.Infof("📨 Accepted quote request %s from %s (%d items)", lead.ID, lead.Email, len(lead.Items))

	return nil
}

func (s *LeadService) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	// Run workers for both regular and retry tasks
	s.runWorkersForStream(ctx, &wg, max(1, numWorkers), queue.StreamName((&task.LeadDeliveryTask{}).TaskType()), "delivery")
	s.runWorkersForStream(ctx, &wg, max(1, numWorkers/2), queue.StreamName((&task.LeadRetryTask{}).TaskType()), "retry")

	wg.Wait()
	return nil
}

func (s *LeadService) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer for this stream
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s-%d", workerType, time.Now().UnixNano())
				claimedMessages, err := s.queue.AutoClaim(ctx, s.groupName, consumer, streamName, s.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimedMessages) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimedMessages), workerType)
					for _, msg := range claimedMessages {
						if err := s.processMessage(ctx, &msg); err != nil {
							log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
					msg, err := s.queue.GetTask(ctx, s.groupName, consumer, streamName)
					if err != nil {
						if ctx.Err() == nil {
							log.Errorf("❌ Failed to get task from %s: %v", streamName, err)
							sleep(ctx, time.Second)
						}
						continue
					}

					if msg != nil {
						if err := s.processMessage(ctx, msg); err != nil {
							log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}(i + 1)
	}
}

func (s *LeadService) processMessage(ctx context.Context, msg *redis.XMessage) error {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok {
		return fmt.Errorf("invalid task type in message %s", msg.ID)
	}

	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return fmt.Errorf("invalid task data in message %s", msg.ID)
	}

	streamName := queue.StreamName(taskType)
	switch taskType {
	case (&task.LeadDeliveryTask{}).TaskType():
		deliveryTask, err := task.UnmarshalTask[*task.LeadDeliveryTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal lead delivery task data: %w", err)
		}

		if err := s.attempt(ctx, deliveryTask.Lead, 1); err != nil {
			return err
		}

	case (&task.LeadRetryTask{}).TaskType():
		retryTask, err := task.UnmarshalTask[*task.LeadRetryTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal retry task data: %w", err)
		}

		// Unacked messages are picked up again by the auto-claimer
		if !sleep(ctx, s.backoff(retryTask.RetryCount)) {
			return ctx.Err()
		}

		if err := s.attempt(ctx, retryTask.Lead, retryTask.RetryCount+1); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	if err := s.queue.AckTask(ctx, streamName, s.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}

	return nil
}

// attempt delivers the lead and records the outcome. A failed delivery is re-queued as a retry task
// until maxAttempts is reached. The returned error means the outcome could not be recorded.
func (s *LeadService) attempt(ctx context.Context, lead domain.Lead, attempt int) error {
	err := s.client.Deliver(ctx, lead)
	if err == nil {
		metrics.LeadDeliveries.WithLabelValues(metrics.ResultDelivered).Inc()
		log.Infof("✅ Delivered lead %s (attempt %d)", lead.ID, attempt)
		if err := s.repository.MarkDelivered(ctx, lead.ID, attempt); err != nil {
			log.Errorf("❌ Failed to mark lead %s delivered: %v", lead.ID, err)
		}
		return nil
	}

	if attempt >= s.maxAttempts {
		metrics.LeadDeliveries.WithLabelValues(metrics.ResultFailed).Inc()
		log.Errorf("❌ Giving up on lead %s after %d attempts: %v", lead.ID, attempt, err)
		if markErr := s.repository.MarkFailed(ctx, lead.ID, attempt, err.Error()); markErr != nil {
			log.Errorf("❌ Failed to mark lead %s failed: %v", lead.ID, markErr)
		}
		return nil
	}

	retryTask := &task.LeadRetryTask{
		Lead:       lead,
		RetryCount: attempt,
		Error:      err.Error(),
	}
	if _, addErr := s.queue.AddTask(ctx, retryTask); addErr != nil {
		log.Errorf("❌ Failed to add retry task for lead %s: %v", lead.ID, addErr)
		return addErr
	}

	metrics.LeadDeliveries.WithLabelValues(metrics.ResultRetried).Inc()
	log.Warnf("🔄 Added lead %s to retry queue (attempt %d) due to error: %v", lead.ID, attempt, err)
	return nil
}

func (s *LeadService) backoff(retryCount int) time.Duration {
	return min(s.retryDelay*time.Duration(retryCount), config.MaxRetryDelay)
}

// sleep waits for d or until ctx is done. It reports whether the full duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
