package installer

import "testing"

// fillApp advances a fresh session past Welcome and Application.
func fillApp(t *testing.T, s *Session) {
	t.Helper()
	if _, ok := s.Continue(); !ok {
		t.Fatal("continue from welcome should always succeed")
	}
	s.SetAppName("My Portfolio")
	if _, ok := s.Continue(); !ok {
		t.Fatal("continue from application should succeed with a name set")
	}
}

// fillAdmin advances past Admin with valid credentials.
func fillAdmin(t *testing.T, s *Session) {
	t.Helper()
	s.SetAdminUsername("admin")
	s.SetAdminEmail("admin@example.com")
	s.SetAdminPassword("abc123")
	s.SetAdminConfirmPassword("abc123")
	if _, ok := s.Continue(); !ok {
		t.Fatal("continue from admin should succeed with valid credentials")
	}
}

// fillDatabase fills connection fields and records a successful probe.
func fillDatabase(t *testing.T, s *Session) {
	t.Helper()
	s.SetDatabaseHost("localhost")
	s.SetDatabasePort("5432")
	s.SetDatabaseName("vitrine")
	s.SetDatabaseUser("vitrine")
	s.SetDatabasePassword("secret")
	if !s.BeginProbe() {
		t.Fatal("probe should be allowed with all fields set")
	}
	s.FinishProbe(true)
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()
	if s.Step() != StepWelcome {
		t.Errorf("initial step = %v, want welcome", s.Step())
	}
	if s.Validation(GroupDatabase) != Untested {
		t.Errorf("initial validation = %v, want untested", s.Validation(GroupDatabase))
	}
	if s.Commit() != CommitIdle {
		t.Errorf("initial commit = %v, want idle", s.Commit())
	}
	if s.Admin().Password != "" {
		t.Error("default admin password must be empty")
	}
	if s.Database().Password != "" {
		t.Error("default database password must be empty")
	}
}

func TestContinueBlockedByInvalidStep(t *testing.T) {
	s := NewSession()
	s.Continue() // welcome -> application

	s.SetAppName("   ")
	if s.CanContinue() {
		t.Error("continue should be disabled with a blank app name")
	}
	if _, ok := s.Continue(); ok {
		t.Error("continue should be a no-op with a blank app name")
	}
	if s.Step() != StepApplication {
		t.Errorf("step changed to %v under invalid state", s.Step())
	}
}

func TestAdminInvariant(t *testing.T) {
	tests := []struct {
		name    string
		admin   AdminAccount
		isValid bool
	}{
		{"scenario A", AdminAccount{Username: "admin", Email: "admin@example.com", Password: "abc123", ConfirmPassword: "abc123"}, true},
		{"scenario B confirm mismatch", AdminAccount{Username: "admin", Email: "admin@example.com", Password: "abc123", ConfirmPassword: "abc124"}, false},
		{"short password", AdminAccount{Username: "admin", Email: "admin@example.com", Password: "abc12", ConfirmPassword: "abc12"}, false},
		{"missing email", AdminAccount{Username: "admin", Password: "abc123", ConfirmPassword: "abc123"}, false},
		{"missing username", AdminAccount{Email: "admin@example.com", Password: "abc123", ConfirmPassword: "abc123"}, false},
		{"empty password", AdminAccount{Username: "admin", Email: "admin@example.com"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			fillApp(t, s)
			s.SetAdminUsername(tt.admin.Username)
			s.SetAdminEmail(tt.admin.Email)
			s.SetAdminPassword(tt.admin.Password)
			s.SetAdminConfirmPassword(tt.admin.ConfirmPassword)
			if got := s.StepValid(StepAdmin); got != tt.isValid {
				t.Errorf("StepValid(admin) = %v, want %v", got, tt.isValid)
			}
		})
	}
}

func TestDatabaseGateRequiresPassedProbe(t *testing.T) {
	s := NewSession()
	fillApp(t, s)
	fillAdmin(t, s)

	s.SetDatabaseHost("localhost")
	s.SetDatabasePort("5432")
	s.SetDatabaseName("vitrine")
	s.SetDatabaseUser("vitrine")
	s.SetDatabasePassword("secret")

	// Fields complete but untested: gate closed.
	if s.CanContinue() {
		t.Error("continue should be disabled before a successful probe")
	}

	if !s.BeginProbe() {
		t.Fatal("probe should be allowed")
	}
	s.FinishProbe(false)
	if s.Validation(GroupDatabase) != Failed {
		t.Errorf("validation = %v after failed probe, want failed", s.Validation(GroupDatabase))
	}
	if s.CanContinue() {
		t.Error("continue should be disabled after a failed probe")
	}

	s.BeginProbe()
	s.FinishProbe(true)
	if !s.CanContinue() {
		t.Error("continue should be enabled after a successful probe")
	}
}

func TestEditingConnectionInvalidatesProbe(t *testing.T) {
	s := NewSession()
	fillApp(t, s)
	fillAdmin(t, s)
	fillDatabase(t, s)

	if s.Validation(GroupDatabase) != Passed {
		t.Fatalf("validation = %v, want passed", s.Validation(GroupDatabase))
	}

	// Rewriting the same value is not an edit and keeps the verdict.
	s.SetDatabaseHost(s.Database().Host)
	if s.Validation(GroupDatabase) != Passed {
		t.Errorf("validation = %v after no-op write, want passed", s.Validation(GroupDatabase))
	}

	s.SetDatabasePassword("edited")
	if s.Validation(GroupDatabase) != Untested {
		t.Errorf("validation = %v after edit, want untested", s.Validation(GroupDatabase))
	}
	if s.CanContinue() {
		t.Error("continue must not ride on a stale probe result")
	}
}

func TestProbeResultAfterEditIsDiscarded(t *testing.T) {
	s := NewSession()
	fillApp(t, s)
	fillAdmin(t, s)
	s.SetDatabaseHost("localhost")
	s.SetDatabasePort("5432")
	s.SetDatabaseName("vitrine")
	s.SetDatabaseUser("vitrine")
	s.SetDatabasePassword("secret")

	if !s.BeginProbe() {
		t.Fatal("probe should be allowed with all fields set")
	}

	// Edit while the probe is outstanding: its eventual result describes the
	// old values and must not bless the new ones.
	s.SetDatabaseHost("evil.internal")
	s.FinishProbe(true)

	if got := s.Validation(GroupDatabase); got != Untested {
		t.Errorf("validation = %v after edit-during-probe, want untested", got)
	}
	if s.CanContinue() {
		t.Error("continue must not open on a probe of edited credentials")
	}
	if s.ProbeInFlight() {
		t.Error("probe must still settle so a fresh one can start")
	}

	// A fresh probe of the new values works normally.
	if !s.BeginProbe() {
		t.Fatal("fresh probe should be allowed after the stale one settled")
	}
	s.FinishProbe(true)
	if got := s.Validation(GroupDatabase); got != Passed {
		t.Errorf("validation = %v after fresh probe, want passed", got)
	}
}

func TestProbeGuards(t *testing.T) {
	s := NewSession()
	fillApp(t, s)
	fillAdmin(t, s)

	// Incomplete fields: probe rejected.
	s.SetDatabaseHost("localhost")
	if s.BeginProbe() {
		t.Error("probe should be rejected with incomplete connection fields")
	}

	s.SetDatabasePort("5432")
	s.SetDatabaseName("vitrine")
	s.SetDatabaseUser("vitrine")
	s.SetDatabasePassword("secret")

	if !s.BeginProbe() {
		t.Fatal("first probe should start")
	}
	// Second probe while one is outstanding: rejected.
	if s.BeginProbe() {
		t.Error("second probe must be rejected while one is in flight")
	}
	if s.CanBack() || s.CanContinue() {
		t.Error("transition controls must be disabled while a probe is in flight")
	}

	s.FinishProbe(true)
	if s.Busy() {
		t.Error("session should not be busy after probe completes")
	}
}

func TestCommitFiresExactlyOnce(t *testing.T) {
	s := NewSession()
	fillApp(t, s)
	fillAdmin(t, s)
	fillDatabase(t, s)

	fire, ok := s.Continue()
	if !ok || !fire {
		t.Fatalf("continue from database = (fire=%v ok=%v), want (true true)", fire, ok)
	}
	if s.Step() != StepComplete {
		t.Errorf("step = %v, want complete", s.Step())
	}
	if s.Commit() != CommitPending {
		t.Errorf("commit = %v, want pending", s.Commit())
	}

	// Double-click: the second continue must be a no-op and fire nothing.
	fire, ok = s.Continue()
	if ok || fire {
		t.Error("continue from complete must not fire a second commit")
	}
	if s.CanBack() {
		t.Error("back must be disabled while the commit is in flight")
	}

	s.FinishCommit(true, "")
	if s.Commit() != CommitSucceeded {
		t.Errorf("commit = %v, want succeeded", s.Commit())
	}
}

func TestCommitFailureAndStartOver(t *testing.T) {
	s := NewSession()
	fillApp(t, s)
	fillAdmin(t, s)
	fillDatabase(t, s)
	s.Continue()
	s.FinishCommit(false, "schema creation failed")

	if s.Commit() != CommitFailed {
		t.Fatalf("commit = %v, want failed", s.Commit())
	}
	if s.CommitError() != "schema creation failed" {
		t.Errorf("commit error = %q", s.CommitError())
	}

	name := s.App().Name
	if !s.StartOver() {
		t.Fatal("start over should be permitted from a failed terminal step")
	}
	if s.Step() != StepWelcome {
		t.Errorf("step = %v after start over, want welcome", s.Step())
	}
	if s.App().Name != name {
		t.Error("start over must not clear entered field values")
	}
	if s.Validation(GroupDatabase) != Untested {
		t.Error("start over must drop the stale probe result")
	}
	if s.Commit() != CommitIdle {
		t.Errorf("commit = %v after start over, want idle", s.Commit())
	}
}

func TestBackFromCompleteRequiresFreshProbe(t *testing.T) {
	s := NewSession()
	fillApp(t, s)
	fillAdmin(t, s)
	fillDatabase(t, s)
	s.Continue()
	s.FinishCommit(false, "boom")

	if !s.Back() {
		t.Fatal("back from a settled terminal step should be permitted")
	}
	if s.Step() != StepDatabase {
		t.Errorf("step = %v, want database", s.Step())
	}
	if s.Validation(GroupDatabase) != Untested {
		t.Error("probe result must be dropped when backing out of the terminal step")
	}
	if s.CanContinue() {
		t.Error("re-commit must require a fresh successful probe")
	}
}

func TestBackIsNoOpAtWelcome(t *testing.T) {
	s := NewSession()
	if s.CanBack() {
		t.Error("back should be disabled at welcome")
	}
	if s.Back() {
		t.Error("back at welcome must be a no-op")
	}
	if s.Step() != StepWelcome {
		t.Errorf("step = %v, want welcome", s.Step())
	}
}

func TestTimezoneSetterRejectsUnknownZones(t *testing.T) {
	s := NewSession()
	if err := s.SetTimezone("Mars/Olympus_Mons"); err == nil {
		t.Error("unknown timezone should be rejected")
	}
	if err := s.SetTimezone("Europe/Paris"); err != nil {
		t.Errorf("SetTimezone(Europe/Paris) = %v", err)
	}
	if s.App().Timezone != "Europe/Paris" {
		t.Errorf("timezone = %q", s.App().Timezone)
	}
}

func TestBundleCarriesAllGroups(t *testing.T) {
	s := NewSession()
	fillApp(t, s)
	fillAdmin(t, s)
	fillDatabase(t, s)

	b := s.Bundle()
	if b.App.Name != "My Portfolio" {
		t.Errorf("bundle app name = %q", b.App.Name)
	}
	if b.Admin.Username != "admin" || b.Admin.Password != "abc123" {
		t.Errorf("bundle admin = %+v", b.Admin)
	}
	if b.Database.Host != "localhost" || b.Database.Password != "secret" {
		t.Errorf("bundle database = %+v", b.Database)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("bundle should validate: %v", err)
	}
}
