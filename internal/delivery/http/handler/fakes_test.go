package handler_test

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/glosscard/glosscard-backend/internal/domain"
)

type memProfiles struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	creates  int
	reads    int
}

func (m *memProfiles) Create(_ context.Context, id string, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	p.ID = id
	p.Normalize()
	m.profiles[id] = p
	return nil
}

func (m *memProfiles) Save(_ context.Context, id string, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = id
	p.Normalize()
	m.profiles[id] = p
	return nil
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

type memPayments struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
}

func (m *memPayments) Save(_ context.Context, id string, p *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = id
	m.payments[id] = p
	return nil
}

func (m *memPayments) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return p, nil
}

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (s *memStorage) Save(_ context.Context, key string, r io.Reader, _ string) error {
	if s.err != nil {
		return s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return nil
}

func (s *memStorage) URL(_ context.Context, key string) (string, error) {
	return "/" + key, nil
}

func (s *memStorage) Close() error { return nil }

func (s *memStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

type toggleNetwork struct{ offline atomic.Bool }

func (n *toggleNetwork) Online() bool { return !n.offline.Load() }

// recorder implements every analytics hook the handlers and use cases call.
type recorder struct {
	mu     sync.Mutex
	events []domain.AnalyticsEvent
}

func (r *recorder) add(name domain.AnalyticsEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func (r *recorder) has(name domain.AnalyticsEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == name {
			return true
		}
	}
	return false
}

func (r *recorder) Log(name domain.AnalyticsEvent, _ map[string]any) { r.add(name) }
func (r *recorder) PageView(string, string)                         { r.add(domain.EventPageView) }
func (r *recorder) ProfileView(string, string)                      { r.add(domain.EventProfileView) }
func (r *recorder) QRCodeGenerated(string)                          { r.add(domain.EventQRCodeGenerated) }
func (r *recorder) CardCreated(string, bool, int)                   { r.add(domain.EventCardCreated) }
func (r *recorder) Error(string, string, map[string]any)            { r.add(domain.EventErrorOccurred) }

func (r *recorder) ImageUpload(success bool, _ int64, _ string) {
	if success {
		r.add(domain.EventImageUploaded)
		return
	}
	r.add(domain.EventImageUploadFailed)
}
