package endpoint

import (
	"context"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Supplier hands out lead intake endpoints in round-robin order
type Supplier interface {
	Get() string
	Len() int
}

type supplier struct {
	endpoints []string
	current   int
	mutex     sync.Mutex
}

// NewSupplier creates a Supplier over endpoints. With probe set, unreachable endpoints are dropped;
// if none answer, the full list is kept so delivery failures surface through the retry queue.
func NewSupplier(ctx context.Context, endpoints []string, probe bool) Supplier {
	if len(endpoints) == 0 || !probe {
		return &supplier{endpoints: append([]string(nil), endpoints...)}
	}

	log.Infof("🔄 Probing %d intake endpoints in parallel...", len(endpoints))

	// Preserve configured order: the first endpoint is the primary.
	alive := make([]bool, len(endpoints))
	var wg sync.WaitGroup

	for i, url := range endpoints {
		wg.Add(1)

		go func(index int, url string) {
			defer wg.Done()

			if isEndpointAlive(ctx, url) {
				alive[index] = true
				log.Infof("✅ Intake endpoint %s is reachable", url)
			} else {
				log.Warnf("❌ Intake endpoint %s is not reachable, skipping", url)
			}
		}(i, url)
	}

	wg.Wait()

	valid := make([]string, 0, len(endpoints))
	for i, url := range endpoints {
		if alive[i] {
			valid = append(valid, url)
		}
	}

	if len(valid) == 0 {
		log.Warnf("⚠️ No intake endpoint answered the probe, keeping all %d", len(endpoints))
		valid = append(valid, endpoints...)
	}

	log.Infof("✅ Endpoint supplier initialized with %d of %d endpoints", len(valid), len(endpoints))
	return &supplier{endpoints: valid}
}

// Get returns the next endpoint URL in round-robin fashion
func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.endpoints) == 0 {
		return ""
	}

	url := s.endpoints[s.current]
	s.current = (s.current + 1) % len(s.endpoints)

	return url
}

func (s *supplier) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.endpoints)
}

// isEndpointAlive sends a HEAD request; anything short of a server error or transport failure counts as alive
func isEndpointAlive(ctx context.Context, url string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Head(url)
	if err != nil {
		log.Debugf("Endpoint probe failed for %s: %v", url, err)
		return false
	}

	return resp.StatusCode() < http.StatusInternalServerError
}
