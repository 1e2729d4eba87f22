// Package provision performs the actual installation work behind the
// install API: verifying database credentials and provisioning the schema,
// the administrator account, and the application configuration.
package provision

import (
	"context"
	"fmt"
	"strings"
)

// Target identifies the database an installation runs against.
type Target struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

// DSN renders the target as a keyword/value connection string.
func (t Target) DSN() string {
	parts := []string{
		"host=" + quote(t.Host),
		"port=" + quote(t.Port),
		"dbname=" + quote(t.Database),
		"user=" + quote(t.User),
		"password=" + quote(t.Password),
		"sslmode=prefer",
	}
	return strings.Join(parts, " ")
}

// quote escapes a connection-string value per the libpq keyword/value rules.
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// Request is everything an installation needs.
type Request struct {
	Target Target

	AppName     string
	CompanyName string
	Timezone    string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

func (r Request) validate() error {
	if r.Target.Host == "" || r.Target.Port == "" || r.Target.Database == "" || r.Target.User == "" || r.Target.Password == "" {
		return fmt.Errorf("incomplete database target")
	}
	if r.AppName == "" {
		return fmt.Errorf("application name is required")
	}
	if r.AdminUsername == "" || r.AdminEmail == "" || r.AdminPassword == "" {
		return fmt.Errorf("incomplete admin account")
	}
	return nil
}

// Provisioner verifies connectivity and performs installations.
type Provisioner interface {
	// Probe verifies that the target is reachable with the supplied
	// credentials. It performs no writes.
	Probe(ctx context.Context, target Target) error

	// Install provisions schema, admin account and application settings in
	// one transaction. The transaction is the rollback boundary: on error,
	// nothing is left behind.
	Install(ctx context.Context, req Request) error
}
