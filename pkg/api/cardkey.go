package api

import "time"

// Статусы карт-ключа
const (
	CardKeyStatusDisabled = 0
	CardKeyStatusUnused   = 1
	CardKeyStatusUsed     = 2
)

// Типы карт-ключа
const (
	CardKeyTypeRegister = 1
	CardKeyTypeVIP      = 2
)

// CardKey код активации
type CardKey struct {
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
	UsedAt        *time.Time `json:"used_at,omitempty" yaml:"used_at,omitempty"`
	ExpireAt      *time.Time `json:"expire_at,omitempty" yaml:"expire_at,omitempty"`
	UsedBy        *int       `json:"used_by,omitempty" yaml:"used_by,omitempty"`
	UsedByUser    *User      `json:"used_by_user,omitempty" yaml:"used_by_user,omitempty"`
	CreatedByUser *User      `json:"created_by_user,omitempty" yaml:"created_by_user,omitempty"`
	CardCode      string     `json:"card_code" yaml:"card_code"` // формат TL| + 24 символа A-Z0-9
	Remark        string     `json:"remark" yaml:"remark"`
	ID            int        `json:"id" yaml:"id"`
	CardType      int        `json:"card_type" yaml:"card_type"`
	Duration      int        `json:"duration" yaml:"duration"` // срок действия в днях
	Status        int        `json:"status" yaml:"status"`
	CreatedBy     int        `json:"created_by" yaml:"created_by"`
}

// CardKeyCreateRequest запрос на генерацию карт-ключей
type CardKeyCreateRequest struct {
	Remark   string `json:"remark,omitempty" validate:"omitempty,max=200"`
	Count    int    `json:"count" validate:"required,min=1,max=100"`
	CardType int    `json:"card_type" validate:"required,oneof=1 2"`
	Duration int    `json:"duration" validate:"required,min=1,max=365"`
}

// CardKeyListParams фильтры списка карт-ключей
type CardKeyListParams struct {
	Status   *int   `url:"status,omitempty"`
	CardType *int   `url:"card_type,omitempty"`
	Keyword  string `url:"keyword,omitempty"`
	PageParams
}

// CardCodeRequest запрос с одним кодом активации
type CardCodeRequest struct {
	CardCode string `json:"card_code" validate:"required,cardcode"`
}

// CardKeyStatistics сводка по карт-ключам
type CardKeyStatistics struct {
	TotalCards    int64 `json:"total_cards" yaml:"total_cards"`
	UnusedCards   int64 `json:"unused_cards" yaml:"unused_cards"`
	UsedCards     int64 `json:"used_cards" yaml:"used_cards"`
	DisabledCards int64 `json:"disabled_cards" yaml:"disabled_cards"`
}

// CardKeyValidation ответ проверки кода активации
type CardKeyValidation struct {
	Valid    bool `json:"valid" yaml:"valid"`
	CardType int  `json:"card_type" yaml:"card_type"`
	Duration int  `json:"duration" yaml:"duration"`
}

// VIPUpgradeResult результат применения VIP карт-ключа
type VIPUpgradeResult struct {
	VIPExpireAt *time.Time `json:"vip_expire_at,omitempty" yaml:"vip_expire_at,omitempty"`
	VIPLevel    int        `json:"vip_level" yaml:"vip_level"`
}
