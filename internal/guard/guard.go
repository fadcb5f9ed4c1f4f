// Package guard decides whether a screen may render for the current session.
// Decisions are pure; performing the redirect is left to the caller.
package guard

import (
	"github.com/spec-kit/bizdash/internal/session"
)

const (
	// LoginPath is where unauthenticated users are sent.
	LoginPath = "/login"
	// LandingPath is where authenticated admins without enough privilege are sent.
	LandingPath = "/overview"
)

// Policy selects a guard variant.
type Policy int

const (
	// RequireAuthenticated admits any authenticated admin.
	RequireAuthenticated Policy = iota
	// RequireSuperAdmin admits only super-admins.
	RequireSuperAdmin
	// RequireStaff admits any authenticated staff member.
	RequireStaff
)

func (p Policy) String() string {
	switch p {
	case RequireAuthenticated:
		return "authenticated"
	case RequireSuperAdmin:
		return "super-admin"
	case RequireStaff:
		return "staff"
	default:
		return "unknown"
	}
}

// View is the slice of session state a guard looks at.
type View struct {
	Authenticated bool
	SuperAdmin    bool
}

// AdminView snapshots an admin session.
func AdminView(s *session.AdminSession) View {
	if s == nil {
		return View{}
	}
	return View{Authenticated: s.IsAuthenticated(), SuperAdmin: s.IsSuperAdmin()}
}

// StaffView snapshots a staff session.
func StaffView(s *session.StaffSession) View {
	if s == nil {
		return View{}
	}
	return View{Authenticated: s.IsAuthenticated()}
}

// Decision is either Allow or a redirect target.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Allowed is the decision that lets the screen render.
func Allowed() Decision { return Decision{Allow: true} }

// Redirect is the decision that sends the user to path instead.
func Redirect(path string) Decision { return Decision{RedirectTo: path} }

// Decide evaluates p against v.
func Decide(p Policy, v View) Decision {
	if !v.Authenticated {
		return Redirect(LoginPath)
	}
	switch p {
	case RequireSuperAdmin:
		if !v.SuperAdmin {
			return Redirect(LandingPath)
		}
		return Allowed()
	case RequireAuthenticated, RequireStaff:
		return Allowed()
	default:
		return Redirect(LoginPath)
	}
}

// State is the lifecycle of one guard evaluation.
type State int

const (
	Checking State = iota
	Allowing
	Redirecting
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Allowing:
		return "allowed"
	case Redirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// Gate is one guard instance. It moves from Checking to Allowing or Redirecting
// and stays there until Reset.
type Gate struct {
	policy   Policy
	state    State
	decision Decision
}

// NewGate returns a gate in the Checking state.
func NewGate(p Policy) *Gate {
	return &Gate{policy: p}
}

// Evaluate resolves the gate. Once resolved, later calls return the same decision
// until Reset.
func (g *Gate) Evaluate(v View) Decision {
	if g.state != Checking {
		return g.decision
	}
	g.decision = Decide(g.policy, v)
	if g.decision.Allow {
		g.state = Allowing
	} else {
		g.state = Redirecting
	}
	return g.decision
}

// Reset re-enters Checking, as after a session change.
func (g *Gate) Reset() {
	g.state = Checking
	g.decision = Decision{}
}

// State reports where the gate is.
func (g *Gate) State() State { return g.state }
