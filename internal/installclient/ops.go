package installclient

import (
	"context"

	"github.com/vitrine-cms/vitrine-setup/internal/history"
	"github.com/vitrine-cms/vitrine-setup/internal/installer"
	"github.com/vitrine-cms/vitrine-setup/internal/notify"
)

// Backend is the slice of the install API the wizard operations need.
// *Client satisfies it; tests substitute fakes.
type Backend interface {
	TestConnection(ctx context.Context, req ConnTestRequest) (*ConnTestResponse, error)
	Install(ctx context.Context, req InstallRequest) (*InstallResponse, error)
}

// genericConnFailure is shown when neither the backend nor the transport
// supplied a message.
const genericConnFailure = "could not connect to the database"

// Prober issues a single connectivity probe and reports the outcome through
// the injected notifier. It attempts no retries; the caller re-triggers
// manually.
type Prober struct {
	Backend Backend
	Notify  notify.Notifier
	Log     *history.Store // optional attempt log
}

// Probe tests the supplied connection. ok is the backend's verdict (false
// also covers transport errors); msg carries the failure message shown to
// the user.
func (p Prober) Probe(ctx context.Context, conn installer.DatabaseConnection) (ok bool, msg string) {
	notifier := p.Notify
	if notifier == nil {
		notifier = notify.Discard{}
	}

	resp, err := p.Backend.TestConnection(ctx, NewConnTestRequest(conn))
	switch {
	case err != nil:
		msg = err.Error()
	case resp.Success:
		ok = true
	case resp.Error != "":
		msg = resp.Error
	default:
		msg = genericConnFailure
	}

	if ok {
		notifier.Successf("database connection verified")
	} else {
		notifier.Errorf("connection test failed: %s", msg)
	}
	if p.Log != nil {
		_ = p.Log.Record(history.KindProbe, conn, ok, msg)
	}
	return ok, msg
}

// Committer issues the final installation request. The backend is the
// transaction boundary; a failure here means restarting the wizard, not a
// partial retry.
type Committer struct {
	Backend Backend
	Notify  notify.Notifier
	Log     *history.Store // optional attempt log
}

// Commit sends the full merged bundle.
func (c Committer) Commit(ctx context.Context, b installer.Bundle) (ok bool, msg string) {
	notifier := c.Notify
	if notifier == nil {
		notifier = notify.Discard{}
	}

	resp, err := c.Backend.Install(ctx, NewInstallRequest(b))
	switch {
	case err != nil:
		msg = err.Error()
	case resp.Success:
		ok = true
	case resp.Error != "":
		msg = resp.Error
	default:
		msg = "installation failed"
	}

	if ok {
		notifier.Successf("installation complete")
	} else {
		notifier.Errorf("installation failed: %s", msg)
	}
	if c.Log != nil {
		_ = c.Log.Record(history.KindInstall, b.Database, ok, msg)
	}
	return ok, msg
}
