// Package idle runs the global size check when the host application is idle.
package idle

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Target is what a Purger checks. *cache.Registry implements it.
type Target interface {
	PurgeIfNeeded() bool
}

/*
Purger moves the global size check off the write path.

Hosts that configure the registry with purge_on_write: false call Idle whenever
they have nothing else to do (an event loop going quiet, a request finishing).
Idle never blocks: it only wakes a background worker, which runs the check at most
once per interval.
*/
type Purger struct {
	target   Target
	interval time.Duration
	logger   *zap.Logger

	// ch holds at most one pending wakeup. Further Idle calls while a
	// wakeup is pending are folded into it.
	ch chan struct{}

	// done is closed by Close.
	done chan struct{}

	// last is when the worker last ran the check. Only the worker touches it.
	last time.Time
	now  func() time.Time

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPurger starts a worker that checks target at most once per interval.
// An interval of zero checks on every wakeup.
func NewPurger(target Target, interval time.Duration, logger *zap.Logger) *Purger {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Purger{
		target:   target,
		interval: interval,
		logger:   logger,
		ch:       make(chan struct{}, 1),
		done:     make(chan struct{}),
		now:      time.Now,
	}

	p.wg.Add(1)
	go p.worker()

	return p
}

// Idle signals that the host is idle. It returns immediately and does nothing after Close.
func (p *Purger) Idle() {
	select {
	case <-p.done:
		return
	default:
	}

	select {
	case p.ch <- struct{}{}:
	default:
		// a wakeup is already pending
	}
}

func (p *Purger) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ch:
			p.handle()
		case <-p.done:
			select {
			case <-p.ch:
				p.handle()
			default:
			}
			return
		}
	}
}

// handle runs one check unless the previous one is younger than interval.
func (p *Purger) handle() bool {
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.interval {
		return false
	}
	p.last = now

	if p.target.PurgeIfNeeded() {
		p.logger.Debug("idle purge ran")
	}
	return true
}

/*
Close stops the worker.
------------------
1. Mark the purger closed (later Idle calls are ignored)
2. Wait for the worker to run a pending check and exit

Close is safe to call more than once.
*/
func (p *Purger) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}
