package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultDispatchTimeout bounds one background delivery, retries included.
const DefaultDispatchTimeout = 20 * time.Second

// Dispatcher delivers notifications in the background so the caller never
// waits on a slow receiver. A nil *Dispatcher discards everything.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewDispatcher wraps n. A timeout of zero or less uses
// DefaultDispatchTimeout.
func NewDispatcher(n Notifier, timeout time.Duration) *Dispatcher {
	if n == nil {
		n = Nop{}
	}
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}
	return &Dispatcher{notifier: n, timeout: timeout}
}

// Send starts delivering notes and returns immediately. Delivery keeps the
// values of ctx but not its cancellation, and stops after the dispatcher
// timeout. Failures are logged.
func (d *Dispatcher) Send(ctx context.Context, city string, notes []Notification) {
	if d == nil || len(notes) == 0 {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		if err := Dispatch(ctx, d.notifier, notes); err != nil {
			log.Printf("notify: notifications for %s: %v", city, err)
		}
	}()
}

// Wait blocks until every delivery started by Send has finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
