package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 应用配置
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OTP      OTPConfig      `mapstructure:"otp"`
	Invoice  InvoiceConfig  `mapstructure:"invoice"`
	Storage  StorageConfig  `mapstructure:"storage"`
	SMS      SMSConfig      `mapstructure:"sms"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Env  string `mapstructure:"env"`  // dev | prod
	Port string `mapstructure:"port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	URL             string `mapstructure:"url"` // 必填，缺失视为致命错误
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_minutes"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	TTL    int    `mapstructure:"ttl_minutes"` // Access Token 有效期（分钟）
	Issuer string `mapstructure:"issuer"`
}

// OTPConfig OTP 配置
type OTPConfig struct {
	TTL    int `mapstructure:"ttl_minutes"` // 验证码有效期（分钟）
	Length int `mapstructure:"length"`      // 验证码长度
}

// InvoiceConfig 发票计算配置
// Mode 支持两种历史行为：
//   - discount: 按订单折扣百分比减免（默认）
//   - flat_tax: 旧版行为，加收固定 5% GST
type InvoiceConfig struct {
	Mode     string  `mapstructure:"mode"`
	TaxPct   float64 `mapstructure:"tax_pct"`
	Currency string  `mapstructure:"currency"` // 货币符号
}

// StorageConfig 文件存储配置
type StorageConfig struct {
	Provider  string `mapstructure:"provider"` // local | s3
	LocalDir  string `mapstructure:"local_dir"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	CDNDomain string `mapstructure:"cdn_domain"`
	BasePath  string `mapstructure:"base_path"`
}

// SMSConfig 短信网关配置（为空时仅记录日志，不真正发送）
type SMSConfig struct {
	GatewayURL string `mapstructure:"gateway_url"`
}

// AdminConfig 平台管理员账号配置
type AdminConfig struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"` // bcrypt 哈希
}

// ==================== 加载 ====================

// Load 加载配置：优先环境变量，其次可选的 config.yaml
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		// 配置文件可选，读取失败只接受 "未找到"
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 兼容常见的裸环境变量名
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("app.port", "SERVER_PORT")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("sms.gateway_url", "SMS_GATEWAY_URL")
	_ = v.BindEnv("storage.provider", "STORAGE_PROVIDER")
	_ = v.BindEnv("storage.bucket", "AWS_BUCKET")
	_ = v.BindEnv("storage.region", "AWS_REGION")
	_ = v.BindEnv("storage.access_key", "AWS_ACCESS_KEY_ID")
	_ = v.BindEnv("storage.secret_key", "AWS_SECRET_ACCESS_KEY")
	_ = v.BindEnv("admin.email", "ADMIN_EMAIL")
	_ = v.BindEnv("admin.password_hash", "ADMIN_PASSWORD_HASH")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("缺少数据库连接串，请设置 DATABASE_URL")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", "8080")

	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime_minutes", 60)

	v.SetDefault("jwt.secret", "storelink-secret-change-in-production")
	v.SetDefault("jwt.ttl_minutes", 30)
	v.SetDefault("jwt.issuer", "storelink-erp")

	v.SetDefault("otp.ttl_minutes", 5)
	v.SetDefault("otp.length", 6)

	v.SetDefault("invoice.mode", "discount")
	v.SetDefault("invoice.tax_pct", 5.0)
	v.SetDefault("invoice.currency", "$")

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.local_dir", "uploads")
	v.SetDefault("storage.base_path", "storelink")
}

// TokenTTL JWT 有效期
func (c *JWTConfig) TokenTTL() time.Duration {
	return time.Duration(c.TTL) * time.Minute
}

// CodeTTL OTP 有效期
func (c *OTPConfig) CodeTTL() time.Duration {
	return time.Duration(c.TTL) * time.Minute
}
