package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/service"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const contactBody = `{"name":"Jane","email":"jane@example.com","subject":"Hi","message":"Hello there"}`

func postContact(h http.Handler, ip string) *httptest.ResponseRecorder {
	return postContactBody(h, ip, contactBody, nil)
}

func postContactBody(h http.Handler, ip, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":40123"
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSubmitContact(t *testing.T) {
	wantReq := models.ContactRequest{Name: "Jane", Email: "jane@example.com", Subject: "Hi", Message: "Hello there"}

	t.Run("accepted", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.contact.EXPECT().Submit(gomock.Any(), "198.51.100.7", wantReq).
			Return(models.ContactMessage{Meta: models.Meta{ID: "m1"}, Name: "Jane", Status: models.MessageUnread, IP: "198.51.100.7"}, nil)

		rec := postContact(h.Init(), "198.51.100.7")

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"m1"`)
	})

	t.Run("blocked ip", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.contact.EXPECT().Submit(gomock.Any(), "203.0.113.5", wantReq).
			Return(models.ContactMessage{}, service.ErrIPBlocked)

		rec := postContact(h.Init(), "203.0.113.5")

		require.Equal(t, http.StatusForbidden, rec.Code)
		var resp models.BlockedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.BlockedResponse{Error: msgBlocked, Blocked: true}, resp)
	})

	t.Run("rate limited", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.contact.EXPECT().Submit(gomock.Any(), "198.51.100.7", wantReq).
			Return(models.ContactMessage{}, &service.RateLimitError{RetryAfter: 90*time.Second + 200*time.Millisecond})

		rec := postContact(h.Init(), "198.51.100.7")

		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "91", rec.Header().Get("Retry-After"))
		var resp models.RateLimitResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.RateLimitResponse{Error: msgRateLimited, RetryAfter: 91}, resp)
	})

	t.Run("invalid email", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.contact.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.ContactMessage{}, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided,
				&validators.FieldError{Field: "email", Message: "Invalid email address"}))

		rec := postContact(h.Init(), "198.51.100.7")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid email address"}`, rec.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.contact.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.ContactMessage{}, errors.New("disk full"))

		rec := postContact(h.Init(), "198.51.100.7")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.blocked.EXPECT().IsBlocked(gomock.Any(), "198.51.100.7").Return(false, nil)

		rec := postContactBody(h.Init(), "198.51.100.7", `not json`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"`+msgInvalidJSON+`"}`, rec.Body.String())
	})

	t.Run("invalid json from blocked ip", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.blocked.EXPECT().IsBlocked(gomock.Any(), "203.0.113.5").Return(true, nil)

		rec := postContactBody(h.Init(), "203.0.113.5", `{not json`, nil)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error":"`+msgBlocked+`","blocked":true}`, rec.Body.String())
	})

	t.Run("invalid json and block list down", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.blocked.EXPECT().IsBlocked(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))

		rec := postContactBody(h.Init(), "198.51.100.7", `{not json`, nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSubmitContact_ClientAddress(t *testing.T) {
	spoofed := map[string]string{"X-Real-IP": "198.51.100.1", "X-Forwarded-For": "198.51.100.1"}

	t.Run("proxy headers ignored by default", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.contact.EXPECT().Submit(gomock.Any(), "203.0.113.5", gomock.Any()).
			Return(models.ContactMessage{}, service.ErrIPBlocked)

		rec := postContactBody(h.Init(), "203.0.113.5", contactBody, spoofed)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("proxy headers trusted when enabled", func(t *testing.T) {
		_, m := newMockedHandler(t)
		h := NewHandler(m.services(), nil, config.Server{TrustProxyHeaders: true}, logger.Nop())
		m.contact.EXPECT().Submit(gomock.Any(), "198.51.100.1", gomock.Any()).
			Return(models.ContactMessage{Meta: models.Meta{ID: "m1"}}, nil)

		rec := postContactBody(h.Init(), "10.0.0.2", contactBody, spoofed)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestContactAdmin(t *testing.T) {
	t.Run("list with status filter", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.allowAdmin()
		m.contact.EXPECT().List(gomock.Any(), models.ListOptions{Status: "unread", Limit: 10}).
			Return([]models.ContactMessage{{Meta: models.Meta{ID: "m1"}}}, nil)

		rec := serve(h.Init(), http.MethodGet, "/api/contact?status=unread&limit=10", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"m1"`)
	})

	t.Run("list empty", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.allowAdmin()
		m.contact.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

		rec := serve(h.Init(), http.MethodGet, "/api/contact", "", true)

		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("get", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.allowAdmin()
		m.contact.EXPECT().Get(gomock.Any(), "m1").Return(models.ContactMessage{Meta: models.Meta{ID: "m1"}}, nil)

		rec := serve(h.Init(), http.MethodGet, "/api/contact/m1", "", true)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("update status", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.allowAdmin()
		m.contact.EXPECT().UpdateStatus(gomock.Any(), "m1", models.StatusUpdateRequest{Status: models.MessageReplied}).
			Return(models.ContactMessage{Meta: models.Meta{ID: "m1"}, Status: models.MessageReplied}, nil)

		rec := serve(h.Init(), http.MethodPut, "/api/contact/m1/status", `{"status":"replied"}`, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"replied"`)
	})

	t.Run("delete missing", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.allowAdmin()
		m.contact.EXPECT().Delete(gomock.Any(), "nope").Return(store.ErrNotFound)

		rec := serve(h.Init(), http.MethodDelete, "/api/contact/nope", "", true)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unread count", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.allowAdmin()
		m.contact.EXPECT().UnreadCount(gomock.Any()).Return(3, nil)

		rec := serve(h.Init(), http.MethodGet, "/api/contact/unread-count", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"unread":3}`, rec.Body.String())
	})
}
