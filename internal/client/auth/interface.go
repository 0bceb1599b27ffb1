package auth

import (
	"context"

	"github.com/iudanet/hubctl/internal/client/api"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// Client - часть API клиента, которая нужна сервису авторизации
type Client interface {
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error)
	Logout(ctx context.Context, opts ...api.RequestOption) error
	CurrentUser(ctx context.Context) (*pkgapi.User, error)
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	ChangePassword(ctx context.Context, req pkgapi.PasswordRequest) error
	UseVIPCard(ctx context.Context, code string) (*pkgapi.VIPUpgradeResult, error)
}

var _ Client = (*api.Client)(nil)

// Session - операции хранилища сессии, которыми пользуется сервис
type Session interface {
	SetAuthInfo(ctx context.Context, token string, user *pkgapi.User) error
	ClearAuthInfo(ctx context.Context) error
	UpdateUserInfo(ctx context.Context, user *pkgapi.User) error
	IsAuthenticated() bool
}
