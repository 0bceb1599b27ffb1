package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeStore - потокобезопасное хранилище сессии в памяти
type fakeStore struct {
	updateErr error
	token     string
	mu        sync.Mutex
	updates   int
	expires   int
	expired   bool
}

func newFakeStore(token string) *fakeStore {
	return &fakeStore{token: token}
}

func (s *fakeStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeStore) UpdateToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.updateErr != nil {
		return s.updateErr
	}
	s.token = token
	return nil
}

func (s *fakeStore) Expire(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires++
	first := !s.expired
	s.expired = true
	s.token = ""
	return first
}

// recordingNotifier запоминает все уведомления
type recordingNotifier struct {
	msgs []string
	mu   sync.Mutex
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

// countingNavigator считает переходы на экран входа
type countingNavigator struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNavigator) ToLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
}

func (n *countingNavigator) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
		// ID делает токены с одинаковым exp различимыми
		ID: time.Now().Format(time.RFC3339Nano),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

// writeEnvelope пишет конверт API с HTTP 200
func writeEnvelope(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{"code": code, "message": message}
	if data != nil {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(body)
}
