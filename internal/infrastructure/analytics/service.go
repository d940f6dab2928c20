// Package analytics records product analytics events off the request path.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"go.uber.org/zap"
)

const sinkTimeout = 2 * time.Second

type Event struct {
	Name      domain.AnalyticsEvent
	Params    map[string]any
	Timestamp time.Time
}

// Sink persists events. Implementations are called from a single goroutine.
type Sink interface {
	Write(ctx context.Context, event Event) error
}

// Service queues events into a bounded buffer drained by one worker.
// Logging never blocks the caller: a full buffer drops the event.
type Service struct {
	sink    Sink
	log     *zap.Logger
	enabled bool
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	events chan Event
	done   chan struct{}
}

func NewService(sink Sink, bufferSize int, enabled bool, log *zap.Logger) *Service {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	s := &Service{
		sink:    sink,
		log:     log,
		enabled: enabled,
		now:     time.Now,
		events:  make(chan Event, bufferSize),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Service) run() {
	defer close(s.done)
	for event := range s.events {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		if err := s.sink.Write(ctx, event); err != nil {
			s.log.Warn("failed to record analytics event",
				zap.String("event", string(event.Name)),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Log records an event with optional parameters.
func (s *Service) Log(name domain.AnalyticsEvent, params map[string]any) {
	if !s.enabled {
		s.log.Debug("analytics disabled", zap.String("event", string(name)), zap.Any("params", params))
		return
	}

	event := Event{Name: name, Params: params, Timestamp: s.now().UTC()}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.events <- event:
	default:
		s.log.Warn("analytics buffer full, dropping event", zap.String("event", string(name)))
	}
}

// Close flushes queued events and stops the worker.
func (s *Service) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	s.mu.Unlock()
	<-s.done
}

func (s *Service) PageView(pageName, pagePath string) {
	s.Log(domain.EventPageView, map[string]any{
		"page_name": pageName,
		"page_path": pagePath,
	})
}

func (s *Service) ProfileView(profileID, profileName string) {
	s.Log(domain.EventProfileView, map[string]any{
		"profile_id":   profileID,
		"profile_name": profileName,
	})
}

func (s *Service) ProfileShare(profileID, method string) {
	s.Log(domain.EventProfileShare, map[string]any{
		"profile_id":   profileID,
		"share_method": method,
	})
}

var contactEvents = map[string]domain.AnalyticsEvent{
	"email":   domain.EventEmailClick,
	"phone":   domain.EventPhoneClick,
	"meeting": domain.EventMeetingSchedule,
}

// ContactAction records an email, phone or meeting click. Unknown actions
// are ignored.
func (s *Service) ContactAction(action, profileID string) {
	name, ok := contactEvents[action]
	if !ok {
		return
	}
	s.Log(name, map[string]any{"profile_id": profileID})
}

var socialEvents = map[string]domain.AnalyticsEvent{
	"linkedin":  domain.EventLinkedInClick,
	"github":    domain.EventGitHubClick,
	"portfolio": domain.EventPortfolioClick,
	"resume":    domain.EventResumeClick,
}

func (s *Service) SocialClick(platform, profileID string) {
	name, ok := socialEvents[platform]
	if !ok {
		return
	}
	s.Log(name, map[string]any{
		"profile_id": profileID,
		"platform":   platform,
	})
}

func (s *Service) QRCodeGenerated(profileID string) {
	s.Log(domain.EventQRCodeGenerated, map[string]any{"profile_id": profileID})
}

func (s *Service) CardCreated(profileID string, hasAvatar bool, expertiseCount int) {
	s.Log(domain.EventCardCreated, map[string]any{
		"profile_id":      profileID,
		"has_avatar":      hasAvatar,
		"expertise_count": expertiseCount,
	})
}

// ImageUpload records image_uploaded or image_upload_failed. Zero size and
// empty message are omitted.
func (s *Service) ImageUpload(success bool, fileSize int64, errorMessage string) {
	name := domain.EventImageUploaded
	if !success {
		name = domain.EventImageUploadFailed
	}

	params := map[string]any{}
	if fileSize > 0 {
		params["file_size"] = fileSize
	}
	if errorMessage != "" {
		params["error_message"] = errorMessage
	}
	s.Log(name, params)
}

// Error records error_occurred; field keys are prefixed with "context_".
func (s *Service) Error(errorType, message string, fields map[string]any) {
	params := map[string]any{
		"error_type":    errorType,
		"error_message": message,
	}
	for k, v := range fields {
		params["context_"+k] = v
	}
	s.Log(domain.EventErrorOccurred, params)
}
