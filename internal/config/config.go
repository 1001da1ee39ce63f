package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        DatabaseConfig    `toml:"database"`
	Logs            LogsConfig        `toml:"logs"`
	Metrics         MetricsConfig     `toml:"metrics"`
	IdentityService IntegrationConfig `toml:"identity_service"`
	CatalogService  IntegrationConfig `toml:"catalog_service"`
	Booking         BookingConfig     `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки HTTP-клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig политика движка доступности и бронирования.
// Передаётся в use cases при конструировании — движок не читает глобальное состояние,
// и тесты могут варьировать политику без сайд-эффектов на процесс.
type BookingConfig struct {
	SlotStepMinutes         int `toml:"slot_step_minutes"`
	AdvanceBookingDays      int `toml:"advance_booking_days"`
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
}

// Значения политики бронирования по умолчанию
const (
	DefaultSlotStepMinutes         = 15
	DefaultAdvanceBookingDays      = 0 // 0 = без ограничения
	DefaultMinBookingNoticeMinutes = 0
)

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Booking.SlotStepMinutes <= 0 {
		cfg.Booking.SlotStepMinutes = DefaultSlotStepMinutes
	}
	if cfg.Booking.AdvanceBookingDays < 0 {
		cfg.Booking.AdvanceBookingDays = DefaultAdvanceBookingDays
	}
	if cfg.Booking.MinBookingNoticeMinutes < 0 {
		cfg.Booking.MinBookingNoticeMinutes = DefaultMinBookingNoticeMinutes
	}

	return &cfg, nil
}
