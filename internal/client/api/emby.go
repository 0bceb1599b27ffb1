package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// TestEmby проверяет связь backend с сервером Emby, возвращает сообщение сервера
func (c *Client) TestEmby(ctx context.Context) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/emby/test", nil, nil)
	if err != nil {
		return "", fmt.Errorf("test emby request failed: %w", err)
	}
	return env.Message, nil
}

// SyncEmbyUsers синхронизирует пользователей Emby
func (c *Client) SyncEmbyUsers(ctx context.Context) (*pkgapi.EmbySyncResult, error) {
	var res pkgapi.EmbySyncResult
	if _, err := c.do(ctx, http.MethodPost, "/emby/sync", nil, &res); err != nil {
		return nil, fmt.Errorf("sync emby users request failed: %w", err)
	}
	return &res, nil
}

// ListEmbyUsers возвращает пользователей сервера Emby
func (c *Client) ListEmbyUsers(ctx context.Context) ([]pkgapi.EmbyUser, error) {
	var users []pkgapi.EmbyUser
	if _, err := c.do(ctx, http.MethodGet, "/emby/users", nil, &users); err != nil {
		return nil, fmt.Errorf("list emby users request failed: %w", err)
	}
	return users, nil
}

// MediaServerURL возвращает публичный адрес сервера Emby
func (c *Client) MediaServerURL(ctx context.Context) (string, error) {
	var res pkgapi.ServerURLResponse
	if _, err := c.do(ctx, http.MethodGet, "/media/server-url", nil, &res); err != nil {
		return "", fmt.Errorf("media server url request failed: %w", err)
	}
	return res.ServerURL, nil
}

// ListLibraries возвращает медиатеки
func (c *Client) ListLibraries(ctx context.Context) ([]pkgapi.MediaLibrary, error) {
	var libs []pkgapi.MediaLibrary
	if _, err := c.do(ctx, http.MethodGet, "/media/libraries", nil, &libs); err != nil {
		return nil, fmt.Errorf("list libraries request failed: %w", err)
	}
	return libs, nil
}

// ListMediaItems возвращает страницу элементов медиатеки
func (c *Client) ListMediaItems(
	ctx context.Context,
	q pkgapi.MediaItemsQuery,
) (*pkgapi.PageResponse[pkgapi.MediaItem], error) {
	var page pkgapi.PageResponse[pkgapi.MediaItem]
	if _, err := c.do(ctx, http.MethodGet, "/media/items", nil, &page, Query(q)); err != nil {
		return nil, fmt.Errorf("list media items request failed: %w", err)
	}
	return &page, nil
}

// GetMediaItem возвращает элемент медиатеки
func (c *Client) GetMediaItem(ctx context.Context, id string) (*pkgapi.MediaItem, error) {
	var item pkgapi.MediaItem
	if _, err := c.do(ctx, http.MethodGet, "/media/items/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, fmt.Errorf("get media item request failed: %w", err)
	}
	return &item, nil
}

// LatestMedia возвращает последние добавленные элементы
func (c *Client) LatestMedia(ctx context.Context, q pkgapi.LatestMediaQuery) ([]pkgapi.MediaItem, error) {
	var items []pkgapi.MediaItem
	if _, err := c.do(ctx, http.MethodGet, "/media/latest", nil, &items, Query(q)); err != nil {
		return nil, fmt.Errorf("latest media request failed: %w", err)
	}
	return items, nil
}

// ImageURL строит адрес изображения элемента на сервере Emby.
// Пустой imageType означает Primary, нулевой maxWidth не добавляется.
func ImageURL(serverURL, itemID, imageType, tag string, maxWidth int) string {
	if imageType == "" {
		imageType = "Primary"
	}
	u := strings.TrimRight(serverURL, "/") + "/Items/" + url.PathEscape(itemID) + "/Images/" + url.PathEscape(imageType)

	params := url.Values{}
	if tag != "" {
		params.Set("tag", tag)
	}
	if maxWidth > 0 {
		params.Set("maxWidth", strconv.Itoa(maxWidth))
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}
