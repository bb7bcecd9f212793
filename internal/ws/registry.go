// internal/ws/registry.go
package ws

import (
	"sort"
	"sync"

	"dm-service/internal/middleware"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry is the single source of truth for who is online. It maps a user to
// their one active connection, in memory only: a restart means zero online
// users until clients reconnect.
//
// Single active connection per identity is a stated limitation of this design.
// A later Register for the same user replaces the entry last-write-wins; the
// superseded connection is not forcibly closed, and its eventual Unregister is
// ignored because removal is keyed by connection ID, not user ID.
type Registry struct {
	mu     sync.Mutex
	conns  map[uuid.UUID]*Conn
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		conns:  make(map[uuid.UUID]*Conn),
		logger: logger,
	}
}

// Register inserts or replaces the entry for the connection's user. A
// membership change broadcasts the full roster to every registered connection;
// a replacement leaves the roster unchanged, so only the new connection gets
// a snapshot.
func (r *Registry) Register(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, replaced := r.conns[c.userID]
	r.conns[c.userID] = c
	middleware.SetOnlineUsers(float64(len(r.conns)))

	payload, err := encodeEvent(EventOnlineUsers, r.snapshotLocked())
	if err != nil {
		r.logger.Error("Failed to encode roster", zap.Error(err))
		return
	}

	if replaced {
		r.logger.Info("Connection replaced",
			zap.String("userId", c.userID.String()),
			zap.String("oldConnId", prev.id.String()),
			zap.String("connId", c.id.String()))
		c.push(payload)
		return
	}

	r.logger.Info("User online",
		zap.String("userId", c.userID.String()),
		zap.String("connId", c.id.String()))
	r.broadcastLocked(payload)
}

// Unregister removes the entry for the connection's user, but only while that
// user's stored connection ID still matches: a disconnect arriving for an
// already-superseded connection must not evict the newer entry.
func (r *Registry) Unregister(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.conns[c.userID]
	if !ok || cur.id != c.id {
		r.logger.Debug("Ignoring disconnect of superseded connection",
			zap.String("userId", c.userID.String()),
			zap.String("connId", c.id.String()))
		return
	}

	delete(r.conns, c.userID)
	middleware.SetOnlineUsers(float64(len(r.conns)))

	r.logger.Info("User offline",
		zap.String("userId", c.userID.String()),
		zap.String("connId", c.id.String()))

	payload, err := encodeEvent(EventOnlineUsers, r.snapshotLocked())
	if err != nil {
		r.logger.Error("Failed to encode roster", zap.Error(err))
		return
	}
	r.broadcastLocked(payload)
}

// Lookup returns the live connection for the user, if any.
func (r *Registry) Lookup(userID uuid.UUID) (*Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns[userID]
	return c, ok
}

// Snapshot returns the sorted identities of all online users.
func (r *Registry) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() []string {
	ids := make([]string, 0, len(r.conns))
	for userID := range r.conns {
		ids = append(ids, userID.String())
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) broadcastLocked(payload []byte) {
	for _, c := range r.conns {
		if !c.push(payload) {
			r.logger.Warn("Dropped roster broadcast, send buffer full",
				zap.String("userId", c.userID.String()))
		}
	}
}
