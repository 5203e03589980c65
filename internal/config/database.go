// internal/config/database.go
package config

import (
	"strings"
)

// DSN renders the libpq key/value connection string. The password key is
// omitted entirely when unset so local trust-auth setups work out of the box.
func (d *DatabaseConfig) DSN() string {
	return d.dsn(d.Password)
}

// RedactedDSN is DSN with the password masked, safe for logs.
func (d *DatabaseConfig) RedactedDSN() string {
	if d.Password == "" {
		return d.dsn("")
	}
	return d.dsn("[redacted]")
}

func (d *DatabaseConfig) dsn(password string) string {
	parts := []string{
		"host=" + d.Host,
		"port=" + d.Port,
		"user=" + d.User,
	}
	if password != "" {
		parts = append(parts, "password="+password)
	}
	parts = append(parts, "dbname="+d.Database, "sslmode="+d.SSLMode)
	return strings.Join(parts, " ")
}
