package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// refreshBackend - фейковый backend с эндпоинтом обновления и одним рабочим эндпоинтом
type refreshBackend struct {
	newToken     string
	seenTokens   []string
	refreshCalls atomic.Int32
	mu           sync.Mutex
	refreshDelay time.Duration
	failRefresh  bool
}

func (b *refreshBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	if r.URL.Path == "/api/auth/refresh" {
		b.refreshCalls.Add(1)
		time.Sleep(b.refreshDelay)
		if b.failRefresh {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeEnvelope(w, 200, "ok", pkgapi.RefreshResponse{Token: b.newToken, ExpiresIn: 7200})
		return
	}

	b.mu.Lock()
	b.seenTokens = append(b.seenTokens, auth)
	b.mu.Unlock()
	writeEnvelope(w, 200, "ok", []pkgapi.Permission{})
}

func (b *refreshBackend) tokens() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.seenTokens...)
}

// N конкурентных запросов с почти истекшим токеном: одно обновление, все запросы с новым токеном
func TestClient_ConcurrentRenewal_RefreshesOnce(t *testing.T) {
	stale := mintToken(t, time.Now().Add(10*time.Minute))
	fresh := mintToken(t, time.Now().Add(2*time.Hour))

	backend := &refreshBackend{newToken: fresh, refreshDelay: 100 * time.Millisecond}
	server := httptest.NewServer(backend)
	defer server.Close()

	store := newFakeStore(stale)
	notifier := &recordingNotifier{}
	client := NewClient(server.URL, store, WithNotifier(notifier))

	const n = 20
	var wg sync.WaitGroup
	start := make(chan struct{})
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := client.ListPermissions(context.Background())
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), backend.refreshCalls.Load())
	assert.Equal(t, fresh, store.Token())
	assert.Equal(t, 1, store.updates)

	seen := backend.tokens()
	require.Len(t, seen, n)
	for _, tok := range seen {
		assert.Equal(t, fresh, tok)
	}
	assert.Empty(t, notifier.messages())
}

func TestClient_FreshToken_NoRefresh(t *testing.T) {
	current := mintToken(t, time.Now().Add(2*time.Hour))

	backend := &refreshBackend{newToken: "unused"}
	server := httptest.NewServer(backend)
	defer server.Close()

	store := newFakeStore(current)
	client := NewClient(server.URL, store)

	for range 3 {
		_, err := client.ListPermissions(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, int32(0), backend.refreshCalls.Load())
	assert.Equal(t, []string{current, current, current}, backend.tokens())
}

func TestClient_ExpiredToken_NoRefresh(t *testing.T) {
	expired := mintToken(t, time.Now().Add(-time.Minute))

	backend := &refreshBackend{newToken: "unused"}
	server := httptest.NewServer(backend)
	defer server.Close()

	client := NewClient(server.URL, newFakeStore(expired))
	_, err := client.ListPermissions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(0), backend.refreshCalls.Load())
	assert.Equal(t, []string{expired}, backend.tokens())
}

// Неудачное обновление не блокирует запрос: он уходит со старым токеном, без уведомления
func TestClient_RefreshFailure_UsesStaleToken(t *testing.T) {
	stale := mintToken(t, time.Now().Add(5*time.Minute))

	backend := &refreshBackend{failRefresh: true}
	server := httptest.NewServer(backend)
	defer server.Close()

	store := newFakeStore(stale)
	notifier := &recordingNotifier{}
	nav := &countingNavigator{}
	client := NewClient(server.URL, store, WithNotifier(notifier), WithNavigator(nav))

	_, err := client.ListPermissions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), backend.refreshCalls.Load())
	assert.Equal(t, []string{stale}, backend.tokens())
	assert.Equal(t, stale, store.Token())
	assert.Empty(t, notifier.messages())
	assert.Equal(t, 0, nav.count())

	// Флаг снят: следующий запрос снова пробует обновить
	_, err = client.ListPermissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), backend.refreshCalls.Load())
}

// Явный вызов Refresh не запускает упреждающее обновление сам для себя
func TestClient_Refresh_DoesNotRecurse(t *testing.T) {
	stale := mintToken(t, time.Now().Add(5*time.Minute))
	fresh := mintToken(t, time.Now().Add(2*time.Hour))

	backend := &refreshBackend{newToken: fresh}
	server := httptest.NewServer(backend)
	defer server.Close()

	client := NewClient(server.URL, newFakeStore(stale))
	resp, err := client.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, resp.Token)
	assert.Equal(t, int32(1), backend.refreshCalls.Load())
}

func TestClient_RenewalThresholdOption(t *testing.T) {
	current := mintToken(t, time.Now().Add(50*time.Minute))
	fresh := mintToken(t, time.Now().Add(3*time.Hour))

	backend := &refreshBackend{newToken: fresh}
	server := httptest.NewServer(backend)
	defer server.Close()

	store := newFakeStore(current)
	client := NewClient(server.URL, store, WithRefreshThreshold(time.Hour))

	_, err := client.ListPermissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), backend.refreshCalls.Load())
	assert.Equal(t, []string{fresh}, backend.tokens())
}

// Клиент с подмененными часами: токен "стареет" без ожидания
func TestClient_Clock(t *testing.T) {
	current := mintToken(t, time.Now().Add(2*time.Hour))
	fresh := mintToken(t, time.Now().Add(4*time.Hour))

	backend := &refreshBackend{newToken: fresh}
	server := httptest.NewServer(backend)
	defer server.Close()

	later := func() time.Time { return time.Now().Add(100 * time.Minute) }
	client := NewClient(server.URL, newFakeStore(current), WithClock(later))

	_, err := client.ListPermissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), backend.refreshCalls.Load())
}
