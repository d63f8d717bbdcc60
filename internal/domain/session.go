package domain

// Session represents the currently authenticated actor. Exactly one session
// is active per token; it is created on login, restored from the session
// store on each request and destroyed on logout.
type Session struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	UserID          string `json:"user_id,omitempty"`
	Username        string `json:"username,omitempty"`
	Role            Role   `json:"role,omitempty"`
}

// AnonymousSession returns the logged-out session. Missing or corrupt
// persisted state always degrades to this, never to an error.
func AnonymousSession() Session {
	return Session{}
}

// Valid reports whether the session satisfies the authentication invariant:
// an authenticated session always carries a role from the closed role set.
func (s Session) Valid() bool {
	if !s.IsAuthenticated {
		return true
	}
	return s.Role.IsValid()
}

// EffectiveRole resolves the role used for rendering decisions. A preview
// override applies only when the true session role is admin; it changes
// visibility, never authority.
func (s Session) EffectiveRole(override Role) Role {
	if override != "" && s.IsAuthenticated && s.Role.CanPreview() {
		return override
	}
	return s.Role
}
