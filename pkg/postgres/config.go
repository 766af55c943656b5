// Package postgres provides PostgreSQL database infrastructure components
package postgres

import (
	"fmt"
	"time"
)

// Config holds the PostgreSQL database configuration
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Schema   string `mapstructure:"schema"`
	SSLMode  string `mapstructure:"sslmode"`
	// Pool settings; zero leaves the database/sql default
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// Debug logs every statement
	Debug bool `mapstructure:"debug"`
	// ConnectTimeout is rounded down to whole seconds
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// DSN builds the key/value connection string understood by pgx
func (c Config) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)

	if c.Schema != "" {
		dsn += " search_path=" + c.Schema
	}
	if secs := int(c.ConnectTimeout / time.Second); secs > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", secs)
	}
	return dsn
}
