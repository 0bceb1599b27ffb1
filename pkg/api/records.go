package api

import "time"

// AccessRecord запись журнала доступа
type AccessRecord struct {
	AccessTime time.Time `json:"access_time" yaml:"access_time"`
	User       *User     `json:"user,omitempty" yaml:"user,omitempty"`
	Resource   string    `json:"resource" yaml:"resource"`
	IPAddress  string    `json:"ip_address" yaml:"ip_address"`
	DeviceInfo string    `json:"device_info" yaml:"device_info"`
	RecordID   int64     `json:"record_id" yaml:"record_id"`
	UserID     int       `json:"user_id" yaml:"user_id"`
}

// AccessRecordQuery фильтры журнала доступа
type AccessRecordQuery struct {
	StartTime string `url:"start_time,omitempty"`
	EndTime   string `url:"end_time,omitempty"`
	Resource  string `url:"resource,omitempty"`
	UserID    int    `url:"user_id,omitempty"`
	PageParams
}

// AccessRecordCreateRequest запись о просмотре страницы
type AccessRecordCreateRequest struct {
	Resource   string `json:"resource,omitempty" validate:"omitempty,max=200"`
	IPAddress  string `json:"ip_address,omitempty" validate:"omitempty,max=50"`
	DeviceInfo string `json:"device_info,omitempty" validate:"omitempty,max=100"`
	UserID     int    `json:"user_id" validate:"required,gt=0"`
}

// SystemConfig системная настройка ключ-значение
type SystemConfig struct {
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
	ConfigKey   string    `json:"config_key" yaml:"config_key"`
	ConfigValue string    `json:"config_value" yaml:"config_value"`
	Description string    `json:"description" yaml:"description"`
}

// UpdateConfigRequest изменение значения настройки
type UpdateConfigRequest struct {
	ConfigValue string `json:"config_value"`
}

// Statistics агрегаты для дашборда
type Statistics struct {
	VIPStats     *VIPStatistics     `json:"vip_stats,omitempty" yaml:"vip_stats,omitempty"`
	CardKeyStats *CardKeyStatistics `json:"cardkey_stats,omitempty" yaml:"cardkey_stats,omitempty"`
	TopUsers     []TopUserItem      `json:"top_users" yaml:"top_users"`
	AccessTrend  []AccessTrendItem  `json:"access_trend" yaml:"access_trend"`
	UserGrowth   []GrowthTrendItem  `json:"user_growth,omitempty" yaml:"user_growth,omitempty"`
	TotalUsers   int64              `json:"total_users" yaml:"total_users"`
	ActiveUsers  int64              `json:"active_users" yaml:"active_users"`
	TodayAccess  int64              `json:"today_access" yaml:"today_access"`
}

// TopUserItem самый активный пользователь
type TopUserItem struct {
	Username    string `json:"username" yaml:"username"`
	UserID      int    `json:"user_id" yaml:"user_id"`
	AccessCount int64  `json:"access_count" yaml:"access_count"`
}

// AccessTrendItem число обращений за день
type AccessTrendItem struct {
	Date  string `json:"date" yaml:"date"`
	Count int64  `json:"count" yaml:"count"`
}

// GrowthTrendItem рост пользователей за день
type GrowthTrendItem struct {
	Date       string `json:"date" yaml:"date"`
	NewUsers   int64  `json:"new_users" yaml:"new_users"`
	TotalUsers int64  `json:"total_users" yaml:"total_users"`
}

// VIPStatistics статистика VIP
type VIPStatistics struct {
	TotalVIP     int64 `json:"total_vip" yaml:"total_vip"`
	ExpiredVIP   int64 `json:"expired_vip" yaml:"expired_vip"`
	Expiring3Day int64 `json:"expiring_3_day" yaml:"expiring_3_day"`
	Expiring7Day int64 `json:"expiring_7_day" yaml:"expiring_7_day"`
}
