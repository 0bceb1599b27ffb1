// Package pageview пишет в журнал доступа факт открытия раздела.
// Запись фоновая и тихая: ее ошибка не должна мешать пользователю.
package pageview

import (
	"context"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/iudanet/hubctl/internal/client/api"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// Названия разделов для журнала доступа
var pageNames = map[string]string{
	"stats":          "Dashboard",
	"users":          "User management",
	"roles":          "Role management",
	"permissions":    "Permission management",
	"access-records": "Access records",
	"configs":        "System configuration",
	"emby":           "Emby sync",
	"media":          "Media libraries",
	"card-keys":      "Card keys",
}

// UnknownPage имя для разделов вне справочника
const UnknownPage = "Unknown page"

const maxDeviceInfo = 100

// PageName возвращает имя раздела по ключу
func PageName(page string) string {
	if name, ok := pageNames[page]; ok {
		return name
	}
	return UnknownPage
}

// Sink принимает запись журнала доступа
type Sink interface {
	CreateAccessRecord(ctx context.Context, req pkgapi.AccessRecordCreateRequest, opts ...api.RequestOption) error
}

// ProfileSource отдает профиль текущего пользователя
type ProfileSource interface {
	UserInfo() *pkgapi.User
}

// Recorder отправляет записи о просмотре разделов
type Recorder struct {
	sink       Sink
	profile    ProfileSource
	logger     *slog.Logger
	ipAddress  string
	deviceInfo string
	wg         sync.WaitGroup
}

// NewRecorder создает Recorder. deviceInfo обрезается до 100 символов.
func NewRecorder(sink Sink, profile ProfileSource, ipAddress, deviceInfo string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		sink:       sink,
		profile:    profile,
		logger:     logger,
		ipAddress:  ipAddress,
		deviceInfo: truncate(deviceInfo, maxDeviceInfo),
	}
}

// Record запускает фоновую запись. Без входа ничего не пишется.
// Возвращает true, если запись была запущена.
func (r *Recorder) Record(ctx context.Context, page string) bool {
	user := r.profile.UserInfo()
	if user == nil || user.UserID == 0 {
		return false
	}

	req := pkgapi.AccessRecordCreateRequest{
		UserID:     user.UserID,
		Resource:   PageName(page),
		IPAddress:  r.ipAddress,
		DeviceInfo: r.deviceInfo,
	}

	// Запись не должна отменяться вместе с командой, ее ограничивает таймаут клиента
	ctx = context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.sink.CreateAccessRecord(ctx, req, api.Silent()); err != nil {
			r.logger.Debug("failed to record page view", "page", page, "error", err)
		}
	}()
	return true
}

// Wait ждет завершения всех запущенных записей
func (r *Recorder) Wait() {
	r.wg.Wait()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
