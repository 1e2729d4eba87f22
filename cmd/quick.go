package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/vitrine-cms/vitrine-setup/internal/installclient"
	"github.com/vitrine-cms/vitrine-setup/internal/installer"
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Short-form install: one form, then go",
	Long: `Collect all install answers in a single three-group form and run the
installation immediately. The same invariants apply as in the full wizard:
the admin password needs six characters and a matching confirmation, and the
database connection is verified before anything is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := collectQuickBundle()
		if err != nil {
			return err
		}

		store := openHistory()
		if store != nil {
			defer store.Close()
		}

		backend := newBackend()
		out := console()
		ctx := context.Background()

		prober := installclient.Prober{Backend: backend, Notify: out, Log: store}
		if ok, _ := prober.Probe(ctx, bundle.Database); !ok {
			return fmt.Errorf("refusing to install against an unverified connection")
		}

		committer := installclient.Committer{Backend: backend, Notify: out, Log: store}
		if ok, _ := committer.Commit(ctx, bundle); !ok {
			return fmt.Errorf("installation failed")
		}

		out.Infof("Your site is ready at %s", resolveServerURL())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quickCmd)
}

// collectQuickBundle runs the three-group form and returns a validated
// bundle.
func collectQuickBundle() (installer.Bundle, error) {
	fields := installer.DefaultFields()
	b := installer.Bundle{App: fields.App, Admin: fields.Admin, Database: fields.Database}

	tzOptions := make([]huh.Option[string], 0, len(installer.Timezones))
	for _, tz := range installer.Timezones {
		tzOptions = append(tzOptions, huh.NewOption(tz, tz))
	}

	appGroup := huh.NewGroup(
		huh.NewInput().
			Title("Application name").
			Value(&b.App.Name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return installer.ErrAppNameRequired
				}
				return nil
			}),
		huh.NewInput().
			Title("Company name").
			Value(&b.App.CompanyName).
			Placeholder("Optional"),
		huh.NewSelect[string]().
			Title("Timezone").
			Options(tzOptions...).
			Value(&b.App.Timezone),
	).Title("Application")

	adminGroup := huh.NewGroup(
		huh.NewInput().
			Title("Admin username").
			Value(&b.Admin.Username),
		huh.NewInput().
			Title("Admin email").
			Value(&b.Admin.Email),
		huh.NewInput().
			Title("Admin password").
			EchoMode(huh.EchoModePassword).
			Value(&b.Admin.Password).
			Validate(func(s string) error {
				if len(s) < installer.MinPasswordLength {
					return installer.ErrPasswordTooShort
				}
				return nil
			}),
		huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&b.Admin.ConfirmPassword),
	).Title("Administrator")

	dbGroup := huh.NewGroup(
		huh.NewInput().
			Title("Database host").
			Value(&b.Database.Host),
		huh.NewInput().
			Title("Database port").
			Value(&b.Database.Port),
		huh.NewInput().
			Title("Database name").
			Value(&b.Database.Database),
		huh.NewInput().
			Title("Database user").
			Value(&b.Database.User),
		huh.NewInput().
			Title("Database password").
			EchoMode(huh.EchoModePassword).
			Value(&b.Database.Password),
	).Title("Database")

	form := huh.NewForm(appGroup, adminGroup, dbGroup)
	if err := form.Run(); err != nil {
		return installer.Bundle{}, err
	}

	if err := b.Validate(); err != nil {
		return installer.Bundle{}, err
	}
	return b, nil
}
