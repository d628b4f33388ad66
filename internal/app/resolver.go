package app

import (
	"fmt"

	"internportal/internal/domain"
)

// Mode selects which portals serve gateway calls.
type Mode string

const (
	// ModeAuto calls the remote portal and substitutes the fixed one on failure.
	ModeAuto Mode = "auto"
	// ModeRemote calls the remote portal only; failures reach the caller.
	ModeRemote Mode = "remote"
	// ModeFallback serves fixed data only.
	ModeFallback Mode = "fallback"
)

// Resolver picks the primary portal and the optional fallback for a mode.
type Resolver struct {
	mode   Mode
	remote domain.Portal
	fixed  domain.Portal
}

// NewResolver creates a resolver. remote may be nil in ModeFallback and
// fixed may be nil in ModeRemote.
func NewResolver(mode Mode, remote, fixed domain.Portal) (*Resolver, error) {
	switch mode {
	case ModeAuto:
		if remote == nil || fixed == nil {
			return nil, fmt.Errorf("resolver: mode %q needs remote and fallback portals", mode)
		}
	case ModeRemote:
		if remote == nil {
			return nil, fmt.Errorf("resolver: mode %q needs a remote portal", mode)
		}
	case ModeFallback:
		if fixed == nil {
			return nil, fmt.Errorf("resolver: mode %q needs a fallback portal", mode)
		}
	default:
		return nil, fmt.Errorf("resolver: unknown mode %q", mode)
	}
	return &Resolver{mode: mode, remote: remote, fixed: fixed}, nil
}

// Mode returns the configured mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Portals returns the portal to try first and the substitute to use when it
// fails. fallback is nil when no substitution happens.
func (r *Resolver) Portals() (primary, fallback domain.Portal) {
	switch r.mode {
	case ModeRemote:
		return r.remote, nil
	case ModeFallback:
		return r.fixed, nil
	default:
		return r.remote, r.fixed
	}
}
