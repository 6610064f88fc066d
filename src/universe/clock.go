package universe

import (
	"context"
	"sync"
	"time"
)

//Clock calls onTick once per interval while it is running
//Stop guarantees that no onTick starts after it returns;
//a tick which is already waiting to be handled sees its ctx cancelled
type Clock struct {
	mu       sync.Mutex
	interval time.Duration
	onTick   func(ctx context.Context)
	cancel   context.CancelFunc
	done     chan struct{}
}

//NewClock creates the stopped clock
func NewClock(interval time.Duration, onTick func(ctx context.Context)) *Clock {
	return &Clock{interval: interval, onTick: onTick}
}

//Running reports whether the clock is ticking
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

//Interval returns the current tick interval
func (c *Clock) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

//Start starts ticking, a running clock is restarted
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stop()
	c.start()
}

//Stop stops ticking and waits for the ticking goroutine to exit
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stop()
}

//Toggle stops the running clock or starts the stopped one
//returns true if the clock is running after the call
func (c *Clock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.stop()
		return false
	}
	c.start()
	return c.cancel != nil
}

//SetInterval changes the tick interval, the running clock is restarted with the new one
func (c *Clock) SetInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
	if c.cancel != nil {
		c.stop()
		c.start()
	}
}

//Close stops the clock, it can be used with defer
func (c *Clock) Close() error {
	c.Stop()
	return nil
}

//start should be called with c.mu held
func (c *Clock) start() {
	if c.interval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	go c.loop(ctx, c.interval, done)
}

//stop should be called with c.mu held
func (c *Clock) stop() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel, c.done = nil, nil
}

//loop is the ticking goroutine
func (c *Clock) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			//ticker.C can be ready together with ctx.Done
			if ctx.Err() != nil {
				return
			}
			c.onTick(ctx)
		}
	}
}
