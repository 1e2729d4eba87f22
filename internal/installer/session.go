package installer

// TriState is the outcome of a connectivity probe: not yet attempted,
// verified good, or verified bad. Editing any connection field drops a prior
// result back to Untested.
type TriState int

const (
	Untested TriState = iota
	Passed
	Failed
)

func (t TriState) String() string {
	switch t {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "untested"
	}
}

// CommitState is the asynchronous outcome of the installation request,
// observed by the terminal step.
type CommitState int

const (
	CommitIdle CommitState = iota
	CommitPending
	CommitSucceeded
	CommitFailed
)

// GroupDatabase is the validation-status key for the database step.
const GroupDatabase = "database"

// Session owns one wizard run: the current step, the field store, the probe
// validation status and the commit outcome. It enforces every transition
// guard; the UI layer only reads state and calls methods here.
//
// Session is not safe for concurrent use. The wizard runs on a single event
// loop and each mount owns an independent Session.
type Session struct {
	step   Step
	fields Fields

	validation map[string]TriState

	commit    CommitState
	commitErr string

	probeInFlight  bool
	commitInFlight bool

	// probeGen counts invalidating edits; probeStarted is the generation an
	// outstanding probe was started against. A result arriving after the
	// generation moved tested values the user has since edited, and is
	// discarded.
	probeGen     int
	probeStarted int
}

// NewSession creates a wizard session at Welcome with default field values.
func NewSession() *Session {
	return &Session{
		step:       StepWelcome,
		fields:     DefaultFields(),
		validation: map[string]TriState{GroupDatabase: Untested},
	}
}

// Step returns the current wizard step.
func (s *Session) Step() Step { return s.step }

// Fields returns a copy of the field store. Mutation goes through the
// setters so that stale-probe invalidation cannot be bypassed.
func (s *Session) Fields() Fields { return s.fields }

// App returns the application identity group.
func (s *Session) App() AppConfig { return s.fields.App }

// Admin returns the administrator credentials group.
func (s *Session) Admin() AdminAccount { return s.fields.Admin }

// Database returns the database connection group.
func (s *Session) Database() DatabaseConnection { return s.fields.Database }

// Validation returns the tri-state probe outcome for a step group.
func (s *Session) Validation(group string) TriState { return s.validation[group] }

// Commit returns the installation outcome state.
func (s *Session) Commit() CommitState { return s.commit }

// CommitError returns the message attached to a failed commit.
func (s *Session) CommitError() string { return s.commitErr }

// Busy reports whether a probe or commit is outstanding. All transition
// controls are disabled while busy.
func (s *Session) Busy() bool { return s.probeInFlight || s.commitInFlight }

// ProbeInFlight reports whether a connectivity probe is outstanding.
func (s *Session) ProbeInFlight() bool { return s.probeInFlight }

// CommitInFlight reports whether the installation request is outstanding.
func (s *Session) CommitInFlight() bool { return s.commitInFlight }

// --- Field setters ---

// SetAppName sets the application name.
func (s *Session) SetAppName(v string) { s.fields.App.Name = v }

// SetCompanyName sets the company name.
func (s *Session) SetCompanyName(v string) { s.fields.App.CompanyName = v }

// SetTimezone sets the application timezone. Unknown zones are rejected.
func (s *Session) SetTimezone(v string) error {
	if !ValidTimezone(v) {
		return ErrUnsupportedTimezone
	}
	s.fields.App.Timezone = v
	return nil
}

// SetAdminUsername sets the administrator username.
func (s *Session) SetAdminUsername(v string) { s.fields.Admin.Username = v }

// SetAdminEmail sets the administrator email.
func (s *Session) SetAdminEmail(v string) { s.fields.Admin.Email = v }

// SetAdminPassword sets the administrator password.
func (s *Session) SetAdminPassword(v string) { s.fields.Admin.Password = v }

// SetAdminConfirmPassword sets the password confirmation.
func (s *Session) SetAdminConfirmPassword(v string) { s.fields.Admin.ConfirmPassword = v }

// SetDatabaseHost sets the database host. Changing it invalidates any prior
// probe result.
func (s *Session) SetDatabaseHost(v string) {
	if v == s.fields.Database.Host {
		return
	}
	s.fields.Database.Host = v
	s.invalidateProbe()
}

// SetDatabasePort sets the database port. Changing it invalidates any prior
// probe result.
func (s *Session) SetDatabasePort(v string) {
	if v == s.fields.Database.Port {
		return
	}
	s.fields.Database.Port = v
	s.invalidateProbe()
}

// SetDatabaseName sets the database name. Changing it invalidates any prior
// probe result.
func (s *Session) SetDatabaseName(v string) {
	if v == s.fields.Database.Database {
		return
	}
	s.fields.Database.Database = v
	s.invalidateProbe()
}

// SetDatabaseUser sets the database user. Changing it invalidates any prior
// probe result.
func (s *Session) SetDatabaseUser(v string) {
	if v == s.fields.Database.User {
		return
	}
	s.fields.Database.User = v
	s.invalidateProbe()
}

// SetDatabasePassword sets the database password. Changing it invalidates
// any prior probe result.
func (s *Session) SetDatabasePassword(v string) {
	if v == s.fields.Database.Password {
		return
	}
	s.fields.Database.Password = v
	s.invalidateProbe()
}

// invalidateProbe drops a prior probe result so the wizard can never commit
// against credentials that were edited after testing.
func (s *Session) invalidateProbe() {
	s.validation[GroupDatabase] = Untested
	s.probeGen++
}

// --- Step predicates and transitions ---

// StepValid reports whether the given step's validity predicate holds.
func (s *Session) StepValid(step Step) bool {
	switch step {
	case StepWelcome:
		return true
	case StepApplication:
		return s.fields.appValid()
	case StepAdmin:
		return s.fields.adminValid()
	case StepDatabase:
		return s.validation[GroupDatabase] == Passed
	default:
		return false
	}
}

// CanBack reports whether the Back control is enabled.
func (s *Session) CanBack() bool {
	if s.Busy() {
		return false
	}
	_, ok := s.step.Next(ActionBack)
	return ok
}

// CanContinue reports whether the Continue/Finish control is enabled.
func (s *Session) CanContinue() bool {
	if s.Busy() {
		return false
	}
	if _, ok := s.step.Next(ActionContinue); !ok {
		return false
	}
	return s.StepValid(s.step)
}

// Back moves one step backward. Returns false (and changes nothing) when
// Back is not permitted. Backing out of the terminal step clears the commit
// outcome and drops the probe result, so a fresh connectivity test is
// required before the install can be fired again.
func (s *Session) Back() bool {
	if !s.CanBack() {
		return false
	}
	from := s.step
	next, _ := s.step.Next(ActionBack)
	s.step = next
	if from == StepComplete {
		s.commit = CommitIdle
		s.commitErr = ""
		s.invalidateProbe()
	}
	return true
}

// Continue moves one step forward. When the transition fired is
// Database→Complete it also marks the commit as pending and in flight; the
// caller must then issue exactly one installation request and report its
// result through FinishCommit. Continue is a no-op under an invalid step or
// while an operation is outstanding.
func (s *Session) Continue() (fireCommit bool, ok bool) {
	if !s.CanContinue() {
		return false, false
	}
	fireCommit = s.step == StepDatabase
	next, _ := s.step.Next(ActionContinue)
	s.step = next
	if fireCommit {
		s.commit = CommitPending
		s.commitErr = ""
		s.commitInFlight = true
	}
	return fireCommit, true
}

// StartOver returns from the terminal step to Welcome without clearing
// entered field values. The probe result is dropped: whatever made the
// commit fail may equally have invalidated the earlier connectivity test.
func (s *Session) StartOver() bool {
	if s.step != StepComplete || s.Busy() {
		return false
	}
	s.step = StepWelcome
	s.commit = CommitIdle
	s.commitErr = ""
	s.invalidateProbe()
	return true
}

// --- Probe lifecycle ---

// CanProbe reports whether a connectivity probe may be started: on the
// Database step, with every connection field filled, and nothing in flight.
func (s *Session) CanProbe() bool {
	return s.step == StepDatabase && s.fields.Database.Complete() && !s.Busy()
}

// BeginProbe marks a probe as in flight. Returns false if a probe may not be
// started, guaranteeing at most one outstanding probe.
func (s *Session) BeginProbe() bool {
	if !s.CanProbe() {
		return false
	}
	s.probeInFlight = true
	s.probeStarted = s.probeGen
	return true
}

// FinishProbe records a probe result delivered by the prober's completion
// callback. A result for values edited since the probe started is dropped:
// the verdict stays Untested and the user must re-test.
func (s *Session) FinishProbe(success bool) {
	s.probeInFlight = false
	if s.probeGen != s.probeStarted {
		return
	}
	if success {
		s.validation[GroupDatabase] = Passed
	} else {
		s.validation[GroupDatabase] = Failed
	}
}

// FinishCommit records the installation outcome delivered by the committer's
// completion callback.
func (s *Session) FinishCommit(success bool, errMsg string) {
	s.commitInFlight = false
	if success {
		s.commit = CommitSucceeded
		s.commitErr = ""
	} else {
		s.commit = CommitFailed
		s.commitErr = errMsg
	}
}

// Bundle builds the merged field bundle sent at commit time.
func (s *Session) Bundle() Bundle {
	return Bundle{
		App:      s.fields.App,
		Admin:    s.fields.Admin,
		Database: s.fields.Database,
	}
}
