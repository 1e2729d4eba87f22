package installer

// Step identifies one stage of the installation wizard.
type Step int

const (
	StepWelcome Step = iota
	StepApplication
	StepAdmin
	StepDatabase
	StepComplete
)

// Action is a transition request against the wizard state machine.
type Action int

const (
	ActionBack Action = iota
	ActionContinue
)

// transitions is the explicit state × action table. Transitions absent from
// the table are illegal: Back from Welcome, Continue out of Complete.
var transitions = map[Step]map[Action]Step{
	StepWelcome: {
		ActionContinue: StepApplication,
	},
	StepComplete: {
		ActionBack: StepDatabase,
	},
	StepApplication: {
		ActionBack:     StepWelcome,
		ActionContinue: StepAdmin,
	},
	StepAdmin: {
		ActionBack:     StepApplication,
		ActionContinue: StepDatabase,
	},
	StepDatabase: {
		ActionBack:     StepAdmin,
		ActionContinue: StepComplete,
	},
}

// Next returns the step reached by applying action to s. ok is false when the
// state machine defines no such transition.
func (s Step) Next(action Action) (Step, bool) {
	row, ok := transitions[s]
	if !ok {
		return s, false
	}
	next, ok := row[action]
	if !ok {
		return s, false
	}
	return next, true
}

// Steps returns all wizard steps in order, for progress rendering.
func Steps() []Step {
	return []Step{StepWelcome, StepApplication, StepAdmin, StepDatabase, StepComplete}
}

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepApplication:
		return "application"
	case StepAdmin:
		return "admin"
	case StepDatabase:
		return "database"
	case StepComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Title returns the human-readable step heading.
func (s Step) Title() string {
	switch s {
	case StepWelcome:
		return "Welcome"
	case StepApplication:
		return "Application"
	case StepAdmin:
		return "Administrator"
	case StepDatabase:
		return "Database"
	case StepComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}
