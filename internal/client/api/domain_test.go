package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// Каждая обертка - ровно один глагол и путь
func TestClient_Routes(t *testing.T) {
	validCode := "TL|" + strings.Repeat("A", 24)

	tests := []struct {
		call   func(c *Client) error
		name   string
		method string
		path   string
		body   string
	}{
		{
			name: "delete user", method: http.MethodDelete, path: "/api/users/3",
			call: func(c *Client) error { return c.DeleteUser(context.Background(), 3) },
		},
		{
			name: "reset user password", method: http.MethodPut, path: "/api/users/3/password",
			body: `{"password":"secret1"}`,
			call: func(c *Client) error {
				return c.ResetUserPassword(context.Background(), 3, pkgapi.PasswordRequest{Password: "secret1"})
			},
		},
		{
			name: "set vip", method: http.MethodPut, path: "/api/users/3/vip", body: `{"days":30}`,
			call: func(c *Client) error {
				return c.SetUserVIP(context.Background(), 3, pkgapi.SetVIPRequest{Days: 30})
			},
		},
		{
			name: "batch status", method: http.MethodPut, path: "/api/users/batch/status",
			body: `{"user_ids":[1,2],"status":0}`,
			call: func(c *Client) error {
				return c.BatchUpdateUserStatus(context.Background(), pkgapi.BatchStatusRequest{UserIDs: []int{1, 2}})
			},
		},
		{
			name: "assign permissions", method: http.MethodPost, path: "/api/roles/2/permissions",
			body: `{"permission_ids":[]}`,
			call: func(c *Client) error { return c.AssignPermissions(context.Background(), 2, nil) },
		},
		{
			name: "delete role", method: http.MethodDelete, path: "/api/roles/2",
			call: func(c *Client) error { return c.DeleteRole(context.Background(), 2) },
		},
		{
			name: "update config", method: http.MethodPut, path: "/api/configs/site_name",
			body: `{"config_value":"Hub"}`,
			call: func(c *Client) error { return c.UpdateConfig(context.Background(), "site_name", "Hub") },
		},
		{
			name: "disable card key", method: http.MethodPut, path: "/api/card-keys/9/disable",
			call: func(c *Client) error { return c.DisableCardKey(context.Background(), 9) },
		},
		{
			name: "enable card key", method: http.MethodPut, path: "/api/card-keys/9/enable",
			call: func(c *Client) error { return c.EnableCardKey(context.Background(), 9) },
		},
		{
			name: "delete card key", method: http.MethodDelete, path: "/api/card-keys/9",
			call: func(c *Client) error { return c.DeleteCardKey(context.Background(), 9) },
		},
		{
			name: "use vip card", method: http.MethodPost, path: "/api/card-keys/use-vip",
			body: `{"card_code":"` + validCode + `"}`,
			call: func(c *Client) error {
				_, err := c.UseVIPCard(context.Background(), validCode)
				return err
			},
		},
		{
			name: "logout", method: http.MethodPost, path: "/api/auth/logout",
			call: func(c *Client) error { return c.Logout(context.Background()) },
		},
		{
			name: "change password", method: http.MethodPut, path: "/api/auth/password",
			body: `{"password":"newpass"}`,
			call: func(c *Client) error {
				return c.ChangePassword(context.Background(), pkgapi.PasswordRequest{Password: "newpass"})
			},
		},
		{
			name: "send code", method: http.MethodPost, path: "/api/email/send-code",
			body: `{"email":"a@b.io"}`,
			call: func(c *Client) error {
				return c.SendCode(context.Background(), pkgapi.SendCodeRequest{Email: "a@b.io"})
			},
		},
		{
			name: "emby sync", method: http.MethodPost, path: "/api/emby/sync",
			call: func(c *Client) error {
				_, err := c.SyncEmbyUsers(context.Background())
				return err
			},
		},
		{
			name: "latest media", method: http.MethodGet, path: "/api/media/latest",
			call: func(c *Client) error {
				_, err := c.LatestMedia(context.Background(), pkgapi.LatestMediaQuery{Limit: 5})
				return err
			},
		},
		{
			name: "test database", method: http.MethodPost, path: "/api/setup/test-database",
			call: func(c *Client) error {
				_, err := c.TestDatabase(context.Background(), pkgapi.DatabaseSetupConfig{Host: "db"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.method, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				if tt.body != "" {
					raw, err := io.ReadAll(r.Body)
					require.NoError(t, err)
					assert.JSONEq(t, tt.body, string(raw))
				}
				writeEnvelope(w, 200, "ok", nil)
			}))
			defer server.Close()

			client := NewClient(server.URL, newFakeStore("tok"))
			require.NoError(t, tt.call(client))
		})
	}
}

func TestClient_UseVIPCard_RejectsBadFormat(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", newFakeStore("tok"))
	_, err := client.UseVIPCard(context.Background(), "TL|AAAA")
	assert.ErrorIs(t, err, validation.ErrValidation)
}

func TestClient_TestEmby_ReturnsServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, "emby connection ok", nil)
	}))
	defer server.Close()

	msg, err := NewClient(server.URL, newFakeStore("tok")).TestEmby(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "emby connection ok", msg)
}

func TestClient_FinishSetup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin", req["admin_user"])
		cfg, ok := req["config"].(map[string]any)
		require.True(t, ok)
		emby, ok := cfg["emby"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "http://emby:8096", emby["serverUrl"])
		writeEnvelope(w, 200, "setup complete", nil)
	}))
	defer server.Close()

	client := NewClient(server.URL, newFakeStore(""))
	msg, err := client.FinishSetup(context.Background(), pkgapi.FinishSetupRequest{
		AdminUser:  "admin",
		AdminPass:  "secret1",
		AdminEmail: "admin@example.com",
		Config:     pkgapi.SetupConfig{Emby: pkgapi.EmbySetupConfig{ServerURL: "http://emby:8096"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "setup complete", msg)
}

func TestClient_WaitReady(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		// Готовый backend отвечает на пустой логин ошибкой валидации - это тоже "жив"
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, newFakeStore(""))
	require.NoError(t, client.WaitReady(context.Background(), 5*time.Millisecond, 10))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_WaitReady_GivesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	client := NewClient(server.URL, newFakeStore(""), WithNotifier(notifier))
	err := client.WaitReady(context.Background(), time.Millisecond, 3)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, notifier.messages())
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name      string
		server    string
		itemID    string
		imageType string
		tag       string
		want      string
		maxWidth  int
	}{
		{
			name: "defaults to primary", server: "http://emby:8096", itemID: "abc",
			want: "http://emby:8096/Items/abc/Images/Primary",
		},
		{
			name: "tag and width", server: "http://emby:8096/", itemID: "abc", imageType: "Backdrop",
			tag: "t1", maxWidth: 300,
			want: "http://emby:8096/Items/abc/Images/Backdrop?maxWidth=300&tag=t1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageURL(tt.server, tt.itemID, tt.imageType, tt.tag, tt.maxWidth))
		})
	}
}
