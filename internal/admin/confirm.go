package admin

import "sync"

// A Confirm is a modal yes/no question. It resolves exactly once per Open.
type Confirm struct {
	mu      sync.Mutex
	active  bool
	message string
}

// Open shows the question. It returns false if a question is already pending.
func (c *Confirm) Open(message string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return false
	}
	c.active = true
	c.message = message
	return true
}

// Active returns true while a question is pending.
func (c *Confirm) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.active
}

// Message returns the pending question.
func (c *Confirm) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.message
}

// Accept resolves the question positively.
// It returns false if no question was pending, in which case nothing must be done.
func (c *Confirm) Accept() bool {
	return c.resolve()
}

// Cancel resolves the question negatively.
// It returns false if no question was pending.
func (c *Confirm) Cancel() bool {
	return c.resolve()
}

func (c *Confirm) resolve() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return false
	}
	c.active = false
	c.message = ""
	return true
}
