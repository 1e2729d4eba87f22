package installer

import (
	"errors"
	"fmt"
	"strings"
)

// MinPasswordLength is the minimum accepted administrator password length.
const MinPasswordLength = 6

// Validation errors surfaced by bundle validation and the quick/apply paths.
var (
	ErrAppNameRequired      = errors.New("application name is required")
	ErrAdminIncomplete      = errors.New("admin username, email and password are required")
	ErrPasswordTooShort     = fmt.Errorf("admin password must be at least %d characters", MinPasswordLength)
	ErrPasswordMismatch     = errors.New("admin passwords do not match")
	ErrConnectionIncomplete = errors.New("all database connection fields are required")
	ErrUnsupportedTimezone  = errors.New("unsupported timezone")
)

// ValidateApp checks the Application step invariant.
func ValidateApp(app AppConfig) error {
	if strings.TrimSpace(app.Name) == "" {
		return ErrAppNameRequired
	}
	if app.Timezone != "" && !ValidTimezone(app.Timezone) {
		return fmt.Errorf("%w: %q", ErrUnsupportedTimezone, app.Timezone)
	}
	return nil
}

// ValidateAdmin checks the Admin step invariant: all three credentials
// present, password long enough, confirmation matching.
func ValidateAdmin(admin AdminAccount) error {
	if admin.Username == "" || admin.Email == "" || admin.Password == "" {
		return ErrAdminIncomplete
	}
	if len(admin.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if admin.Password != admin.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// ValidateConnection checks that a connection is complete enough to probe.
func ValidateConnection(conn DatabaseConnection) error {
	if !conn.Complete() {
		return ErrConnectionIncomplete
	}
	return nil
}
