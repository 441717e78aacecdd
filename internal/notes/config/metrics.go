package config

import "fmt"

// MetricsConfig описывает отдельный listener для Prometheus.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"NOTES_METRICS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"NOTES_METRICS_HOST" env-default:""`
	Port    int    `yaml:"port" env:"NOTES_METRICS_PORT" env-default:"9090"`
	Path    string `yaml:"path" env:"NOTES_METRICS_PATH" env-default:"/metrics"`
}

// GetAddress возвращает адрес listener метрик.
func (c *MetricsConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
