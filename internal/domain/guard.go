package domain

import (
	"sort"
	"strings"
)

// GuardOutcome classifies a route guard decision.
type GuardOutcome string

const (
	// GuardUnauthenticated means no authenticated session; redirect to login.
	GuardUnauthenticated GuardOutcome = "unauthenticated"

	// GuardDisallowed means the session is authenticated but its effective
	// role is not in the route's allowed set.
	GuardDisallowed GuardOutcome = "disallowed"

	// GuardAllowed means the route may be rendered.
	GuardAllowed GuardOutcome = "allowed"
)

// GuardDecision is the result of evaluating a navigation attempt. When the
// outcome is GuardDisallowed, AllowedRoles carries the route's allowed-role
// set so the unauthorized page can explain the denial.
type GuardDecision struct {
	Outcome      GuardOutcome
	AllowedRoles []Role
	RedirectTo   string
}

// RouteRule maps a route path prefix to the roles allowed to render it.
type RouteRule struct {
	Prefix       string
	AllowedRoles []Role
}

// RouteTable is the static route-to-roles configuration. Longest matching
// prefix wins. It is supplied at startup and never mutated.
type RouteTable struct {
	rules     []RouteRule
	loginPath string
}

// NewRouteTable builds a route table. Rules are sorted by prefix length so
// Match can take the first hit.
func NewRouteTable(loginPath string, rules []RouteRule) *RouteTable {
	sorted := make([]RouteRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &RouteTable{rules: sorted, loginPath: loginPath}
}

// LoginPath returns the redirect target for unauthenticated requests.
func (t *RouteTable) LoginPath() string {
	return t.loginPath
}

// Match returns the rule governing the given path, if any.
func (t *RouteTable) Match(path string) (RouteRule, bool) {
	for _, rule := range t.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule, true
		}
	}
	return RouteRule{}, false
}

// Evaluate decides whether a session may render a route. Authentication is
// checked strictly before authorization: an anonymous session is always
// redirected to login and never learns which roles a route requires.
func (t *RouteTable) Evaluate(session Session, overrideRole Role, path string) GuardDecision {
	if !session.IsAuthenticated {
		return GuardDecision{
			Outcome:    GuardUnauthenticated,
			RedirectTo: t.loginPath,
		}
	}

	rule, ok := t.Match(path)
	if !ok {
		// Routes absent from the table require authentication only.
		return GuardDecision{Outcome: GuardAllowed}
	}

	effective := session.EffectiveRole(overrideRole)
	for _, r := range rule.AllowedRoles {
		if r == effective {
			return GuardDecision{Outcome: GuardAllowed}
		}
	}

	allowed := make([]Role, len(rule.AllowedRoles))
	copy(allowed, rule.AllowedRoles)

	return GuardDecision{
		Outcome:      GuardDisallowed,
		AllowedRoles: allowed,
	}
}
