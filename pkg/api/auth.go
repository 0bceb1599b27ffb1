package api

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// LoginResponse представляет ответ на успешный логин
type LoginResponse struct {
	UserInfo *User  `json:"user_info"`
	Token    string `json:"token"`
}

// RefreshResponse представляет ответ на обновление токена
type RefreshResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // оставшееся время жизни в секундах
}

// SendCodeRequest запрос на отправку кода подтверждения на email
type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Type  string `json:"type,omitempty"`
}

// RegisterRequest представляет запрос на регистрацию с подтверждением email
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	EmbyUserID string `json:"emby_user_id,omitempty"`
	Message    string `json:"message"`
	UserID     int    `json:"user_id"`
}

// PasswordRequest запрос на смену пароля (своего или чужого)
type PasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// ResetPasswordRequest сброс забытого пароля по коду из письма
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}
