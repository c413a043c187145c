package hub

import "sync"

// ConnRegistry maps a connection handle to the session code it joined. It
// is a lookup relation only, never an owner of session state. Drop yields
// the code at most once, so the disconnect path delivers exactly one Leave
// even when the transport reports the loss twice.
type ConnRegistry struct {
	mu    sync.Mutex
	codes map[string]string
}

func NewConnRegistry() *ConnRegistry {
	return &ConnRegistry{codes: make(map[string]string)}
}

func (r *ConnRegistry) Bind(connID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[connID] = code
}

func (r *ConnRegistry) Drop(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.codes[connID]
	if ok {
		delete(r.codes, connID)
	}
	return code, ok
}
