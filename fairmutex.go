package vtcore

import "sync"

// FairMutex guards the terminal's grid state with an ordering guarantee
// plain sync.Mutex doesn't give: when the PTY-reader thread and the
// renderer thread both want the lock, the renderer is never starved by a
// tight loop of PTY writes. It does this with two inner mutexes - data
// guards the protected state, next is held only long enough to queue a
// fair acquisition - rather than one.
//
// Lock is fair among fair callers: they queue one at a time behind next
// before contending for data. LockUnfair is for the hot PTY-parsing path
// and goes straight to data, so it contends on equal terms with the one
// fair caller already waiting there; sync.Mutex decides which wins.
// TryLease is a non-blocking attempt on data for callers (like a renderer
// polling for a snapshot) that would rather skip than block when the mutex
// is held; it does not reserve next.
type FairMutex struct {
	data sync.Mutex
	next sync.Mutex
}

// Lock acquires the mutex fairly: it queues behind any other fair waiter
// on next before contending for data.
func (m *FairMutex) Lock() {
	m.next.Lock()
	m.data.Lock()
	m.next.Unlock()
}

// Unlock releases the mutex.
func (m *FairMutex) Unlock() {
	m.data.Unlock()
}

// LockUnfair acquires the mutex without queuing behind fair waiters,
// for callers on a hot path that re-acquire very frequently
// ([Terminal.Write], once per chunk of PTY output).
func (m *FairMutex) LockUnfair() {
	m.data.Lock()
}

// TryLease attempts to acquire the mutex without blocking, returning false
// immediately if it's held. Used by callers that would rather skip a
// render pass than stall waiting for the parser thread.
func (m *FairMutex) TryLease() bool {
	return m.data.TryLock()
}
