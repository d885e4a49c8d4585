package api

import (
	"microposts/internal/auth"  // Authentication capability
	"microposts/internal/store" // Query layer
	"time"                      // Clock for post timestamps
)

// Options tune handler behavior
type Options struct {
	AllowAdminSignup bool             // Honor the isAdmin form field
	SecureCookies    bool             // Mark cookies Secure (production, behind TLS)
	SessionTTL       time.Duration    // Session cookie lifetime
	Now              func() time.Time // Clock used to stamp new posts
}

// Handlers holds the route handlers and their collaborators
type Handlers struct {
	q      *store.Queries     // Query layer
	authn  auth.Authenticator // Session capability
	hasher auth.Hasher        // Password hashing
	opts   Options            // Behavior switches
}

// NewHandlers wires handlers to their collaborators
func NewHandlers(q *store.Queries, authn auth.Authenticator, hasher auth.Hasher, opts Options) *Handlers {
	if opts.Now == nil {
		opts.Now = time.Now // Server clock by default
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &Handlers{q: q, authn: authn, hasher: hasher, opts: opts}
}
