package device

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/five82/mapdeck/internal/prefs"
	"github.com/five82/mapdeck/internal/state"
)

// Decision is an answer to the location consent prompt.
type Decision int

const (
	Allow Decision = iota
	Deny
	DenyAlways
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case DenyAlways:
		return "deny-always"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Permissions stores location consent in the prefs file.
type Permissions struct {
	path string
	mu   sync.Mutex
}

// NewPermissions returns a requester backed by the prefs file at path.
// A blank path uses the default prefs location.
func NewPermissions(path string) *Permissions {
	return &Permissions{path: path}
}

// Consent returns the stored consent record.
func (p *Permissions) Consent() prefs.Consent {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored, _ := prefs.Load(p.path)
	return stored.Consent
}

// Evaluate maps stored consent to a permission status. It returns false when
// the user has never answered, in which case the prompt should be shown.
func (p *Permissions) Evaluate() (state.PermissionStatus, bool) {
	return Status(p.Consent())
}

// Status maps a consent record to a permission status.
func Status(c prefs.Consent) (state.PermissionStatus, bool) {
	switch {
	case c.Granted:
		return state.Granted, true
	case c.NeverAsk:
		return state.PermanentDenied, true
	case c.Denials > 0:
		return state.ShouldShowRationale, true
	default:
		return state.Granted, false
	}
}

// Record persists an answer to the consent prompt.
func (p *Permissions) Record(d Decision) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := prefs.Update(p.path, func(stored *prefs.Prefs) {
		c := &stored.Consent
		switch d {
		case Allow:
			c.Granted = true
			c.NeverAsk = false
		case Deny:
			c.Granted = false
			c.Denials++
		case DenyAlways:
			c.Granted = false
			c.Denials++
			c.NeverAsk = true
		}
	})
	if err != nil {
		return fmt.Errorf("record consent: %w", err)
	}
	slog.Info("location consent recorded", "decision", d.String())
	return nil
}

// Reset forgets any stored answer.
func (p *Permissions) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := prefs.Update(p.path, func(stored *prefs.Prefs) { stored.Consent = prefs.Consent{} }); err != nil {
		return fmt.Errorf("reset consent: %w", err)
	}
	return nil
}
