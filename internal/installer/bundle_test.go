package installer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeBundle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "install.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBundle(t *testing.T) {
	path := writeBundle(t, `
app:
  name: My Portfolio
  company_name: Acme Studio
  timezone: Europe/Paris
admin:
  username: admin
  email: admin@example.com
  password: abc123
database:
  host: localhost
  port: "5432"
  database: vitrine
  user: vitrine
  password: secret
`)

	b, err := LoadBundle(path)
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	if b.App.Name != "My Portfolio" || b.App.Timezone != "Europe/Paris" {
		t.Errorf("app = %+v", b.App)
	}
	if b.Admin.ConfirmPassword != b.Admin.Password {
		t.Error("confirm password should mirror the password for file bundles")
	}
	if b.Database.Port != "5432" {
		t.Errorf("port = %q", b.Database.Port)
	}
}

func TestLoadBundleDefaultsTimezone(t *testing.T) {
	path := writeBundle(t, `
app:
  name: My Portfolio
admin:
  username: admin
  email: admin@example.com
  password: abc123
database:
  host: localhost
  port: "5432"
  database: vitrine
  user: vitrine
  password: secret
`)

	b, err := LoadBundle(path)
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	if b.App.Timezone != DefaultTimezone {
		t.Errorf("timezone = %q, want %q", b.App.Timezone, DefaultTimezone)
	}
}

func TestLoadBundleRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			"missing app name",
			"admin:\n  username: admin\n  email: a@b.c\n  password: abc123\ndatabase:\n  host: h\n  port: \"5432\"\n  database: d\n  user: u\n  password: p\n",
			ErrAppNameRequired,
		},
		{
			"short password",
			"app:\n  name: X\nadmin:\n  username: admin\n  email: a@b.c\n  password: abc\ndatabase:\n  host: h\n  port: \"5432\"\n  database: d\n  user: u\n  password: p\n",
			ErrPasswordTooShort,
		},
		{
			"incomplete connection",
			"app:\n  name: X\nadmin:\n  username: admin\n  email: a@b.c\n  password: abc123\ndatabase:\n  host: h\n",
			ErrConnectionIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBundle(t, tt.content)
			_, err := LoadBundle(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadBundle error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadBundleMissingFile(t *testing.T) {
	if _, err := LoadBundle(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for a missing bundle file")
	}
}
