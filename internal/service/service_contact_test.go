package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/mock"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const visitorIP = "203.0.113.5"

var gateNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type contactFixture struct {
	messages *mock.MockContactMessageRepository
	blocked  *mock.MockBlockedIPRepository
	svc      *contactService
}

func newContactFixture(t *testing.T, gate config.Gate) contactFixture {
	ctrl := gomock.NewController(t)
	f := contactFixture{
		messages: mock.NewMockContactMessageRepository(ctrl),
		blocked:  mock.NewMockBlockedIPRepository(ctrl),
	}
	f.svc = NewContactService(f.messages, f.blocked, gate, logger.Nop()).(*contactService)
	f.svc.now = func() time.Time { return gateNow }
	return f
}

func contactRequest() models.ContactRequest {
	return models.ContactRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "I like your work",
	}
}

func defaultGate() config.Gate {
	return config.Gate{Window: time.Hour, MaxMessages: 3, AutoBlockAfter: 2}
}

// ─────────────────────────────────────────────────────────────────────────────
// Submit
// ─────────────────────────────────────────────────────────────────────────────

func TestContactService_Submit_Success(t *testing.T) {
	f := newContactFixture(t, defaultGate())

	f.blocked.EXPECT().FindByIP(gomock.Any(), visitorIP).Return(models.BlockedIP{}, store.ErrNotFound)
	f.messages.EXPECT().RecentByIP(gomock.Any(), visitorIP, gateNow.Add(-time.Hour)).Return(nil, nil)
	f.messages.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m models.ContactMessage) (models.ContactMessage, error) {
			assert.Equal(t, models.MessageUnread, m.Status)
			assert.Equal(t, visitorIP, m.IP)
			assert.Equal(t, "Ada", m.Name)
			m.ID = "m1"
			return m, nil
		})

	got, err := f.svc.Submit(context.Background(), visitorIP, contactRequest())

	require.NoError(t, err)
	assert.Equal(t, "m1", got.ID)
}

func TestContactService_Submit_BlockedIPStoresNothing(t *testing.T) {
	f := newContactFixture(t, defaultGate())

	f.blocked.EXPECT().FindByIP(gomock.Any(), visitorIP).Return(models.BlockedIP{IP: visitorIP}, nil)
	// neither RecentByIP nor Create may be called

	_, err := f.svc.Submit(context.Background(), visitorIP, contactRequest())

	assert.ErrorIs(t, err, ErrIPBlocked)
}

func TestContactService_Submit_BlockedIPWithInvalidRequest(t *testing.T) {
	f := newContactFixture(t, defaultGate())

	req := contactRequest()
	req.Email = "not-an-email"

	f.blocked.EXPECT().FindByIP(gomock.Any(), visitorIP).Return(models.BlockedIP{IP: visitorIP}, nil)

	_, err := f.svc.Submit(context.Background(), visitorIP, req)

	assert.ErrorIs(t, err, ErrIPBlocked)
}

func TestContactService_Submit_InvalidRequestSkipsRateCheck(t *testing.T) {
	f := newContactFixture(t, defaultGate())

	req := contactRequest()
	req.Email = "not-an-email"

	f.blocked.EXPECT().FindByIP(gomock.Any(), visitorIP).Return(models.BlockedIP{}, store.ErrNotFound)
	// neither RecentByIP nor Create may be called

	_, err := f.svc.Submit(context.Background(), visitorIP, req)

	assert.ErrorIs(t, err, validators.ErrInvalidInput)
}

func TestContactService_Submit_BlockListFailure(t *testing.T) {
	f := newContactFixture(t, defaultGate())
	dbErr := errors.New("connection reset")

	f.blocked.EXPECT().FindByIP(gomock.Any(), visitorIP).Return(models.BlockedIP{}, dbErr)

	_, err := f.svc.Submit(context.Background(), visitorIP, contactRequest())

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrIPBlocked)
}

func TestContactService_Submit_RateLimited(t *testing.T) {
	f := newContactFixture(t, config.Gate{Window: time.Hour, MaxMessages: 3})

	recent := []time.Time{
		gateNow.Add(-50 * time.Minute),
		gateNow.Add(-20 * time.Minute),
		gateNow.Add(-time.Minute),
	}
	f.blocked.EXPECT().FindByIP(gomock.Any(), visitorIP).Return(models.BlockedIP{}, store.ErrNotFound)
	f.messages.EXPECT().RecentByIP(gomock.Any(), visitorIP, gomock.Any()).Return(recent, nil)

	_, err := f.svc.Submit(context.Background(), visitorIP, contactRequest())

	require.ErrorIs(t, err, ErrRateLimited)
	var rateErr *RateLimitError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, 10*time.Minute, rateErr.RetryAfter)
	assert.Equal(t, 600, rateErr.RetryAfterSeconds())
}

func TestContactService_Submit_RateLimitDisabled(t *testing.T) {
	f := newContactFixture(t, config.Gate{})

	f.blocked.EXPECT().FindByIP(gomock.Any(), visitorIP).Return(models.BlockedIP{}, store.ErrNotFound)
	f.messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.ContactMessage{}, nil)

	_, err := f.svc.Submit(context.Background(), visitorIP, contactRequest())

	require.NoError(t, err)
}

func TestContactService_Submit_AutoBlocksRepeatOffender(t *testing.T) {
	f := newContactFixture(t, defaultGate())

	full := []time.Time{gateNow.Add(-3 * time.Minute), gateNow.Add(-2 * time.Minute), gateNow.Add(-time.Minute)}
	f.blocked.EXPECT().FindByIP(gomock.Any(), visitorIP).Return(models.BlockedIP{}, store.ErrNotFound).Times(2)
	f.messages.EXPECT().RecentByIP(gomock.Any(), visitorIP, gomock.Any()).Return(full, nil).Times(2)
	f.blocked.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b models.BlockedIP) (models.BlockedIP, error) {
			assert.Equal(t, visitorIP, b.IP)
			assert.Equal(t, AutoGate, b.BlockedBy)
			assert.Equal(t, gateNow, b.BlockedAt)
			return b, nil
		}).
		Times(1)

	_, err := f.svc.Submit(context.Background(), visitorIP, contactRequest())
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = f.svc.Submit(context.Background(), visitorIP, contactRequest())
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestRateLimitError_RetryAfterSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int
	}{
		{0, 1},
		{-time.Second, 1},
		{1500 * time.Millisecond, 2},
		{time.Minute, 60},
	}
	for _, tt := range tests {
		e := &RateLimitError{RetryAfter: tt.in}
		assert.Equal(t, tt.want, e.RetryAfterSeconds(), tt.in.String())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Admin operations
// ─────────────────────────────────────────────────────────────────────────────

func TestContactService_List_RejectsUnknownStatus(t *testing.T) {
	f := newContactFixture(t, defaultGate())

	_, err := f.svc.List(context.Background(), models.ListOptions{Status: "archived"})

	assert.ErrorIs(t, err, validators.ErrInvalidInput)
}

func TestContactService_UpdateStatus(t *testing.T) {
	f := newContactFixture(t, defaultGate())

	f.messages.EXPECT().UpdateStatus(gomock.Any(), "m1", models.MessageRead).Return(models.ContactMessage{Status: models.MessageRead}, nil)

	got, err := f.svc.UpdateStatus(context.Background(), "m1", models.StatusUpdateRequest{Status: models.MessageRead})

	require.NoError(t, err)
	assert.Equal(t, models.MessageRead, got.Status)
}

func TestContactService_UnreadCount(t *testing.T) {
	f := newContactFixture(t, defaultGate())
	f.messages.EXPECT().CountUnread(gomock.Any()).Return(4, nil)

	n, err := f.svc.UnreadCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
