package server

import (
	"log"
	"sync"
)

// Pool tracks socket clients subscribed to wake updates. A CLI client that
// wants to observe tabs being woken subscribes its connection and receives
// every broadcast frame until it disconnects. Subscribers are held as
// SyncConns so broadcast frames share the per-connection write lock with
// handler responses.
type Pool struct {
	log *log.Logger
	mu  sync.RWMutex
	m   map[*SyncConn]struct{}
}

func NewPool(l *log.Logger) *Pool {
	return &Pool{
		log: l,
		m:   make(map[*SyncConn]struct{}),
	}
}

// Subscribe adds sconn to the broadcast set.
func (p *Pool) Subscribe(sconn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[sconn] = struct{}{}
}

// Unsubscribe removes sconn from the broadcast set.
func (p *Pool) Unsubscribe(sconn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, sconn)
}

// Subscribers returns the current subscriber count.
func (p *Pool) Subscribers() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.m)
}

// Broadcast writes a frame to every subscriber. Connections that fail are
// dropped from the set.
func (p *Pool) Broadcast(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for sconn := range p.m {
		if err := sconn.Write(data); err != nil {
			p.log.Println("dropping wake subscriber:", err.Error())
			delete(p.m, sconn)
		}
	}
}
