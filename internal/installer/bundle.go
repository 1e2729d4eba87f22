package installer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bundle is the merged application/admin/database field group sent to the
// backend at commit time. It doubles as the on-disk format for
// non-interactive installs (`vitrine-setup apply -f`).
type Bundle struct {
	App      AppConfig          `yaml:"app"`
	Admin    AdminAccount       `yaml:"admin"`
	Database DatabaseConnection `yaml:"database"`
}

// Validate applies the wizard's step invariants to a fully assembled bundle.
func (b Bundle) Validate() error {
	if err := ValidateApp(b.App); err != nil {
		return err
	}
	if err := ValidateAdmin(b.Admin); err != nil {
		return err
	}
	return ValidateConnection(b.Database)
}

// LoadBundle reads an install bundle from a YAML file. The confirmation
// password is not part of the file format; it is mirrored from the password
// so the shared admin invariant applies unchanged.
func LoadBundle(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("read bundle: %w", err)
	}

	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("parse bundle: %w", err)
	}

	if b.App.Timezone == "" {
		b.App.Timezone = DefaultTimezone
	}
	b.Admin.ConfirmPassword = b.Admin.Password

	if err := b.Validate(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}
