package events

import (
	"context"
	"sync"
	"time"

	"merchant-dashboard/internal/models"
)

// EventType represents the type of event.
type EventType string

const (
	// EventPromoCreated is emitted after a promo was saved and cached
	EventPromoCreated EventType = "promo.created"
	// EventShopCreated is emitted after a shop was saved and cached
	EventShopCreated EventType = "shop.created"
	// EventCouponRedeemed is emitted after a redemption record was written
	EventCouponRedeemed EventType = "coupon.redeemed"
	// EventCacheCleared is emitted when the session cache is wiped on logout
	EventCacheCleared EventType = "cache.cleared"
)

// Event represents an event in the system.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Data      interface{}
}

// PromoCreatedData contains data for promo created events.
type PromoCreatedData struct {
	Promo models.Promo
}

// ShopCreatedData contains data for shop created events.
type ShopCreatedData struct {
	Shop models.Shop
}

// CouponRedeemedData contains data for coupon redeemed events.
type CouponRedeemedData struct {
	Record models.RedeemCoupon
}

// Handler is a function that handles events.
type Handler func(ctx context.Context, event Event) error

// Manager manages event handlers and event publishing.
type Manager struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	enabled  bool
}

// NewManager creates a new event manager.
func NewManager(enabled bool) *Manager {
	return &Manager{
		handlers: make(map[EventType][]Handler),
		enabled:  enabled,
	}
}

// Subscribe subscribes a handler to a specific event type.
func (m *Manager) Subscribe(eventType EventType, handler Handler) {
	if !m.enabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
}

// Publish publishes an event to all subscribed handlers. Handlers run
// asynchronously so a slow subscriber never blocks a use case.
func (m *Manager) Publish(ctx context.Context, eventType EventType, data interface{}) {
	if !m.enabled {
		return
	}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}

	for _, handler := range handlers {
		go func(h Handler) {
			_ = h(ctx, event)
		}(handler)
	}
}

// PublishPromoCreated publishes a promo created event.
func (m *Manager) PublishPromoCreated(ctx context.Context, promo models.Promo) {
	m.Publish(ctx, EventPromoCreated, PromoCreatedData{Promo: promo})
}

// PublishShopCreated publishes a shop created event.
func (m *Manager) PublishShopCreated(ctx context.Context, shop models.Shop) {
	m.Publish(ctx, EventShopCreated, ShopCreatedData{Shop: shop})
}

// PublishCouponRedeemed publishes a coupon redeemed event.
func (m *Manager) PublishCouponRedeemed(ctx context.Context, record models.RedeemCoupon) {
	m.Publish(ctx, EventCouponRedeemed, CouponRedeemedData{Record: record})
}

// PublishCacheCleared publishes a cache cleared event.
func (m *Manager) PublishCacheCleared(ctx context.Context) {
	m.Publish(ctx, EventCacheCleared, nil)
}

// Shutdown shuts down the event manager.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enabled = false
	m.handlers = make(map[EventType][]Handler)
}
