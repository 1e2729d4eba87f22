package installer

import "strings"

// AppConfig holds the application identity collected on the Application step.
type AppConfig struct {
	Name        string `yaml:"name"`
	CompanyName string `yaml:"company_name"`
	Timezone    string `yaml:"timezone"`
}

// AdminAccount holds the administrator credentials collected on the Admin
// step. ConfirmPassword exists only for the wizard's own cross-check and is
// never serialized.
type AdminAccount struct {
	Username        string `yaml:"username"`
	Email           string `yaml:"email"`
	Password        string `yaml:"password"`
	ConfirmPassword string `yaml:"-"`
}

// DatabaseConnection holds the connection parameters collected on the
// Database step.
type DatabaseConnection struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Complete reports whether all five connection fields are filled in. A probe
// may not be attempted until they are.
func (c DatabaseConnection) Complete() bool {
	return c.Host != "" && c.Port != "" && c.Database != "" && c.User != "" && c.Password != ""
}

// Fields is the wizard's field store: the three grouped configuration
// records, mutated by the step forms and read once at commit time.
type Fields struct {
	App      AppConfig
	Admin    AdminAccount
	Database DatabaseConnection
}

// DefaultFields returns the field store pre-filled with first-run defaults.
// Secrets (admin and database passwords) start empty; the relevant steps
// cannot be passed without the operator supplying them.
func DefaultFields() Fields {
	return Fields{
		App: AppConfig{
			Name:     "Vitrine",
			Timezone: DefaultTimezone,
		},
		Admin: AdminAccount{
			Username: "admin",
		},
		Database: DatabaseConnection{
			Host:     "localhost",
			Port:     "5432",
			Database: "vitrine",
			User:     "vitrine",
		},
	}
}

func (f Fields) appValid() bool {
	return strings.TrimSpace(f.App.Name) != ""
}

func (f Fields) adminValid() bool {
	a := f.Admin
	if a.Username == "" || a.Email == "" || a.Password == "" {
		return false
	}
	if len(a.Password) < MinPasswordLength {
		return false
	}
	return a.Password == a.ConfirmPassword
}
