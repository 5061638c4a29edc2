package connectivity

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Prober determines connectivity by polling a health URL on a schedule
// and notifies subscribers on transitions. It implements Observer.
type Prober struct {
	httpClient *http.Client
	probeURL   string
	schedule   string

	cron    *cron.Cron
	entryID cron.EntryID

	mu          sync.RWMutex
	online      bool
	isRunning   bool
	subscribers map[int]func(online bool)
	nextSubID   int
}

// NewProber creates a connectivity prober for the given health URL.
// schedule uses cron syntax, including "@every 30s" style intervals.
func NewProber(probeURL, schedule string, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		httpClient:  &http.Client{Timeout: timeout},
		probeURL:    probeURL,
		schedule:    schedule,
		cron:        cron.New(),
		subscribers: make(map[int]func(online bool)),
	}
}

// Online returns the most recent probe result.
func (p *Prober) Online() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.online
}

// Subscribe registers a transition callback and returns an unsubscribe
// function. Callbacks run on the prober goroutine; keep them short.
func (p *Prober) Subscribe(fn func(online bool)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subscribers, id)
	}
}

// Start probes once synchronously to seed the snapshot, then begins the
// scheduled probing.
func (p *Prober) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	p.Probe(ctx)

	entryID, err := p.cron.AddFunc(p.schedule, func() {
		p.Probe(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule connectivity probe: %w", err)
	}
	p.entryID = entryID
	p.cron.Start()

	log.Printf("Connectivity prober started (%s, schedule %q)", p.probeURL, p.schedule)
	return nil
}

// Stop halts scheduled probing.
func (p *Prober) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isRunning {
		return
	}
	p.cron.Remove(p.entryID)
	p.cron.Stop()
	p.isRunning = false
}

// Probe performs one health check and updates the snapshot, notifying
// subscribers when the state flips.
func (p *Prober) Probe(ctx context.Context) bool {
	online := p.check(ctx)

	p.mu.Lock()
	changed := online != p.online
	p.online = online
	var callbacks []func(online bool)
	if changed {
		for _, fn := range p.subscribers {
			callbacks = append(callbacks, fn)
		}
	}
	p.mu.Unlock()

	if changed {
		log.Printf("Connectivity changed: online=%v", online)
		for _, fn := range callbacks {
			fn(online)
		}
	}
	return online
}

func (p *Prober) check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.probeURL, nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}
