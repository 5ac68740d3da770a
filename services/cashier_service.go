package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sinar-terang/models"
	"sinar-terang/pricing"
)

type ProductLookup interface {
	Get(ctx context.Context, id int) (*models.Product, error)
}

type MemberLookup interface {
	Get(ctx context.Context, id int) (*models.Member, error)
}

type SaleRecorder interface {
	Record(ctx context.Context, req models.CreateSaleRequest) (*models.Sale, error)
}

// SessionView is what the cashier screen renders.
type SessionView struct {
	ID         string           `json:"id"`
	KasirID    int              `json:"kasir_id"`
	MemberName string           `json:"member_name"`
	Cart       pricing.Snapshot `json:"cart"`
	UpdatedAt  time.Time        `json:"updated_at"`
	ExpiresAt  time.Time        `json:"expires_at"`
}

type session struct {
	// mu serialises whole operations so a submit cannot interleave with edits.
	mu         sync.Mutex
	id         string
	kasirID    int
	memberName string
	cart       *pricing.Cart
	lastUsed   time.Time
}

// CashierService keeps the open checkout carts in memory, one per session.
type CashierService struct {
	products ProductLookup
	members  MemberLookup
	sales    SaleRecorder
	ttl      time.Duration
	logger   *zap.Logger

	// Now is replaceable in tests.
	Now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewCashierService(products ProductLookup, members MemberLookup, sales SaleRecorder, ttl time.Duration, logger *zap.Logger) *CashierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &CashierService{
		products: products,
		members:  members,
		sales:    sales,
		ttl:      ttl,
		logger:   logger,
		Now:      time.Now,
		sessions: make(map[string]*session),
	}
}

func (s *CashierService) Open(ctx context.Context, kasirID, memberID int) (*SessionView, error) {
	member, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	sess := &session{
		id:         uuid.NewString(),
		kasirID:    kasirID,
		memberName: member.Name,
		cart:       pricing.NewCart(member.ID),
		lastUsed:   s.Now(),
	}

	out := s.view(sess)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("cashier session opened", zap.String("session_id", sess.id), zap.Int("kasir_id", kasirID))
	return out, nil
}

func (s *CashierService) Get(ctx context.Context, id string, kasirID int) (*SessionView, error) {
	var out *SessionView
	err := s.with(id, kasirID, func(sess *session) error {
		out = s.view(sess)
		return nil
	})
	return out, err
}

func (s *CashierService) AddProduct(ctx context.Context, id string, kasirID, productID int) (*SessionView, error) {
	var out *SessionView
	err := s.with(id, kasirID, func(sess *session) error {
		p, err := s.products.Get(ctx, productID)
		if err != nil {
			return err
		}
		if _, err := sess.cart.AddProduct(*p); err != nil {
			return err
		}
		out = s.view(sess)
		return nil
	})
	return out, err
}

func (s *CashierService) ChangeQuantity(ctx context.Context, id string, kasirID, productID, quantity int) (*SessionView, error) {
	var out *SessionView
	err := s.with(id, kasirID, func(sess *session) error {
		if _, err := sess.cart.ChangeQuantity(productID, quantity); err != nil {
			return err
		}
		out = s.view(sess)
		return nil
	})
	return out, err
}

// SetPrice pins a manual unit price on a line; nil returns the line to automatic pricing.
func (s *CashierService) SetPrice(ctx context.Context, id string, kasirID, productID int, price *int64) (*SessionView, error) {
	var out *SessionView
	err := s.with(id, kasirID, func(sess *session) error {
		if _, err := sess.cart.SetManualPrice(productID, price); err != nil {
			return err
		}
		out = s.view(sess)
		return nil
	})
	return out, err
}

func (s *CashierService) ChangeMember(ctx context.Context, id string, kasirID, memberID int) (*SessionView, error) {
	var out *SessionView
	err := s.with(id, kasirID, func(sess *session) error {
		member, err := s.members.Get(ctx, memberID)
		if err != nil {
			return err
		}
		if err := sess.cart.ChangeMember(member.ID); err != nil {
			return err
		}
		sess.memberName = member.Name
		out = s.view(sess)
		return nil
	})
	return out, err
}

func (s *CashierService) RemoveProduct(ctx context.Context, id string, kasirID, productID int) (*SessionView, error) {
	var out *SessionView
	err := s.with(id, kasirID, func(sess *session) error {
		sess.cart.RemoveProduct(productID)
		out = s.view(sess)
		return nil
	})
	return out, err
}

// Submit records the cart as a sale and empties it for the next customer.
// The cart is left untouched when recording fails.
func (s *CashierService) Submit(ctx context.Context, id string, kasirID int) (*models.Sale, error) {
	var sale *models.Sale
	err := s.with(id, kasirID, func(sess *session) error {
		snap := sess.cart.Snapshot()
		if len(snap.Lines) == 0 {
			return ErrEmptyCart
		}

		recorded, err := s.sales.Record(ctx, snap.Submission(sess.kasirID))
		if err != nil {
			s.logger.Warn("cashier submit failed", zap.String("session_id", sess.id), zap.Error(err))
			return err
		}

		sess.cart.Clear()
		sess.memberName = models.GeneralMemberName
		sale = recorded
		return nil
	})
	return sale, err
}

func (s *CashierService) Abandon(ctx context.Context, id string, kasirID int) error {
	if err := s.with(id, kasirID, func(*session) error { return nil }); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.logger.Info("cashier session abandoned", zap.String("session_id", id))
	return nil
}

// ExpireIdle drops sessions unused for longer than the TTL and returns how many went.
func (s *CashierService) ExpireIdle() int {
	cutoff := s.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastUsed.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			expired++
		}
	}
	return expired
}

// Run expires idle sessions every interval until ctx is cancelled.
func (s *CashierService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.ExpireIdle(); n > 0 {
				s.logger.Info("expired idle cashier sessions", zap.Int("count", n))
			}
		}
	}
}

func (s *CashierService) lookup(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *CashierService) with(id string, kasirID int, fn func(*session) error) error {
	sess, ok := s.lookup(id)
	if !ok {
		return ErrSessionNotFound
	}
	if sess.kasirID != kasirID {
		return ErrSessionForbidden
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.lastUsed.Before(s.Now().Add(-s.ttl)) {
		return ErrSessionNotFound
	}
	sess.lastUsed = s.Now()
	return fn(sess)
}

// view must be called with sess.mu held.
func (s *CashierService) view(sess *session) *SessionView {
	return &SessionView{
		ID:         sess.id,
		KasirID:    sess.kasirID,
		MemberName: sess.memberName,
		Cart:       sess.cart.Snapshot(),
		UpdatedAt:  sess.lastUsed,
		ExpiresAt:  sess.lastUsed.Add(s.ttl),
	}
}
