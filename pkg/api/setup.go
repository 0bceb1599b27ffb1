package api

// SetupStatus состояние первичной настройки
type SetupStatus struct {
	Initialized bool `json:"initialized" yaml:"initialized"`
}

// SetupConfig полная конфигурация backend, собираемая мастером настройки
type SetupConfig struct {
	Server   ServerSetupConfig   `json:"server" yaml:"server"`
	Email    EmailSetupConfig    `json:"email" yaml:"email"`
	Emby     EmbySetupConfig     `json:"emby" yaml:"emby"`
	Log      LogSetupConfig      `json:"log" yaml:"log"`
	JWT      JWTSetupConfig      `json:"jwt" yaml:"jwt"`
	Redis    RedisSetupConfig    `json:"redis" yaml:"redis"`
	CORS     CORSSetupConfig     `json:"cors" yaml:"cors"`
	Database DatabaseSetupConfig `json:"database" yaml:"database"`
}

type ServerSetupConfig struct {
	Mode string `json:"mode" yaml:"mode"`
	Port int    `json:"port" yaml:"port"`
}

type DatabaseSetupConfig struct {
	Host            string `json:"host" yaml:"host"`
	User            string `json:"user" yaml:"user"`
	Password        string `json:"password" yaml:"password"`
	DBName          string `json:"dbname" yaml:"dbname"`
	SSLMode         string `json:"sslmode" yaml:"sslmode"`
	Port            int    `json:"port" yaml:"port"`
	MaxIdleConns    int    `json:"maxIdleConns" yaml:"maxIdleConns"`
	MaxOpenConns    int    `json:"maxOpenConns" yaml:"maxOpenConns"`
	ConnMaxLifetime int    `json:"connMaxLifetime" yaml:"connMaxLifetime"`
}

type RedisSetupConfig struct {
	Host     string `json:"host" yaml:"host"`
	Password string `json:"password" yaml:"password"`
	Port     int    `json:"port" yaml:"port"`
	DB       int    `json:"db" yaml:"db"`
}

type JWTSetupConfig struct {
	Secret      string `json:"secret" yaml:"secret"`
	ExpireHours int    `json:"expireHours" yaml:"expireHours"`
}

type EmbySetupConfig struct {
	ServerURL string `json:"serverUrl" yaml:"serverUrl"`
	APIKey    string `json:"apiKey" yaml:"apiKey"`
}

type EmailSetupConfig struct {
	Host     string `json:"host" yaml:"host"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	From     string `json:"from" yaml:"from"`
	Port     int    `json:"port" yaml:"port"`
}

type LogSetupConfig struct {
	Level    string `json:"level" yaml:"level"`
	Filename string `json:"filename" yaml:"filename"`
}

type CORSSetupConfig struct {
	AllowOrigins     []string `json:"allowOrigins" yaml:"allowOrigins"`
	AllowMethods     []string `json:"allowMethods" yaml:"allowMethods"`
	AllowHeaders     []string `json:"allowHeaders" yaml:"allowHeaders"`
	ExposeHeaders    []string `json:"exposeHeaders" yaml:"exposeHeaders"`
	AllowCredentials bool     `json:"allowCredentials" yaml:"allowCredentials"`
	MaxAge           int      `json:"maxAge" yaml:"maxAge"`
}

// LicenseRequest проверка лицензионного кода
type LicenseRequest struct {
	License string `json:"license" validate:"required"`
}

// FinishSetupRequest завершение мастера: конфигурация и учетная запись администратора
type FinishSetupRequest struct {
	AdminUser  string      `json:"admin_user" validate:"required,min=3,max=50"`
	AdminPass  string      `json:"admin_pass" validate:"required,min=6,max=50"`
	AdminEmail string      `json:"admin_email" validate:"required,email"`
	Config     SetupConfig `json:"config"`
}
