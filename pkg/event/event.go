// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	VesselSpawned   Type = "vessel_spawned"
	VesselSinking   Type = "vessel_sinking"
	VesselRemoved   Type = "vessel_removed"
	ProjectileFired Type = "projectile_fired"
	ProjectileHit   Type = "projectile_hit"
	VesselsRammed   Type = "vessels_rammed"
	GameStarted     Type = "game_started"
	GameEnded       Type = "game_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type]map[int]Handler
	nextKey  int
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[int]Handler),
	}
}

// Subscribe registers a handler for a specific event type and returns a
// function that removes it again.
func (b *Bus) Subscribe(eventType Type, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[int]Handler)
	}
	key := b.nextKey
	b.nextKey++
	b.handlers[eventType][key] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[eventType], key)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.GetType()]))
	for _, h := range b.handlers[event.GetType()] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// VesselEvent carries vessel lifecycle information: spawned, started
// sinking, or removed after a full sink.
type VesselEvent struct {
	BaseEvent
	VesselID uint64
	Class    string
	Elite    bool
}

// NewVesselEvent creates a new vessel lifecycle event
func NewVesselEvent(eventType Type, source interface{}, vesselID uint64, class string, elite bool) *VesselEvent {
	return &VesselEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VesselID: vesselID,
		Class:    class,
		Elite:    elite,
	}
}

// FireEvent reports a projectile leaving a vessel
type FireEvent struct {
	BaseEvent
	ProjectileID uint64
	OwnerID      uint64
	Torpedo      bool
}

// NewFireEvent creates a new projectile-fired event
func NewFireEvent(source interface{}, projectileID, ownerID uint64, torpedo bool) *FireEvent {
	return &FireEvent{
		BaseEvent: BaseEvent{
			EventType: ProjectileFired,
			Source:    source,
		},
		ProjectileID: projectileID,
		OwnerID:      ownerID,
		Torpedo:      torpedo,
	}
}

// HitEvent reports a projectile striking a hull. It carries everything a
// driver needs to award experience, spawn loot or trigger effects: the
// shooter, the struck hull, the damage dealt and whether the hit was lethal.
type HitEvent struct {
	BaseEvent
	ProjectileID uint64
	OwnerID      uint64
	VesselID     uint64
	Damage       float64
	Lethal       bool
}

// NewHitEvent creates a new projectile-hit event
func NewHitEvent(source interface{}, projectileID, ownerID, vesselID uint64, damage float64, lethal bool) *HitEvent {
	return &HitEvent{
		BaseEvent: BaseEvent{
			EventType: ProjectileHit,
			Source:    source,
		},
		ProjectileID: projectileID,
		OwnerID:      ownerID,
		VesselID:     vesselID,
		Damage:       damage,
		Lethal:       lethal,
	}
}

// RamEvent reports hull-to-hull impact damage. BowRam is true when exactly
// one hull struck bow-first, in which case RammerID names it.
type RamEvent struct {
	BaseEvent
	VesselA  uint64
	VesselB  uint64
	BowRam   bool
	RammerID uint64
	DamageA  float64
	DamageB  float64
}

// NewRamEvent creates a new ramming event
func NewRamEvent(source interface{}, vesselA, vesselB uint64, bowRam bool, rammerID uint64, damageA, damageB float64) *RamEvent {
	return &RamEvent{
		BaseEvent: BaseEvent{
			EventType: VesselsRammed,
			Source:    source,
		},
		VesselA:  vesselA,
		VesselB:  vesselB,
		BowRam:   bowRam,
		RammerID: rammerID,
		DamageA:  damageA,
		DamageB:  damageB,
	}
}
