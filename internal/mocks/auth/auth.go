// Package mocks provides hand-written test doubles for auth-related ports.
package mocks

import (
	"context"
	"sync"

	"github.com/sunrise-rp/admin-api/internal/domain/model"
	"github.com/sunrise-rp/admin-api/internal/ports"
)

// MemoryPlayerDirectory is an in-memory PlayerDirectory for tests.
type MemoryPlayerDirectory struct {
	mu      sync.Mutex
	players map[string]*model.Player

	// Err, when set, is returned by every call to simulate a database
	// outage.
	Err error
}

// NewMemoryPlayerDirectory creates a directory seeded with the given players.
func NewMemoryPlayerDirectory(players ...*model.Player) *MemoryPlayerDirectory {
	d := &MemoryPlayerDirectory{players: make(map[string]*model.Player)}
	for _, p := range players {
		d.players[p.Nickname] = p
	}
	return d
}

// Add inserts or replaces a player record.
func (d *MemoryPlayerDirectory) Add(p *model.Player) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.players[p.Nickname] = p
}

// FindByNickname implements ports.PlayerDirectory.
func (d *MemoryPlayerDirectory) FindByNickname(_ context.Context, nickname string) (*model.Player, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	p, ok := d.players[nickname]
	if !ok {
		return nil, ports.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

// SetTelegramID implements ports.PlayerDirectory.
func (d *MemoryPlayerDirectory) SetTelegramID(_ context.Context, nickname string, value *string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Err != nil {
		return d.Err
	}
	p, ok := d.players[nickname]
	if !ok {
		return ports.ErrPlayerNotFound
	}
	p.TelegramID = value
	return nil
}
