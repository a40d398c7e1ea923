package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseDSN   string `envconfig:"database_dsn" default:"crm:crm@tcp(localhost:3306)/crm?parseTime=true"`
	MigrationsURL string `envconfig:"migrations_url" default:"file://migrations"`
	HTTPAddr      string `envconfig:"http_addr" default:":8000"`

	// Settings for the periodic job runner.
	GraphQLURL     string        `envconfig:"graphql_url" default:"http://localhost:8000/graphql"`
	HeartbeatLog   string        `envconfig:"heartbeat_log" default:"/tmp/crm_heartbeat_log.txt"`
	ReminderLog    string        `envconfig:"reminder_log" default:"/tmp/order_reminders_log.txt"`
	ReportLog      string        `envconfig:"report_log" default:"/tmp/crm_report_log.txt"`
	RequestRetries int           `envconfig:"request_retries" default:"3"`
	RequestTimeout time.Duration `envconfig:"request_timeout" default:"10s"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("crm", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
