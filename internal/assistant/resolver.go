package assistant

import (
	"strings"

	"github.com/huddlehq/huddle/internal/domain"
)

// ResolveTask maps a loose reference to at most one task from the candidate
// set. Direct ID references match exactly. Title fragments use
// case-insensitive bidirectional substring containment: a candidate matches
// when its title contains the fragment or the fragment contains the title.
// The first candidate in the caller-supplied order wins; there is no ranking
// beyond first match, and callers depend on that.
func ResolveTask(ref TaskRef, candidates []*domain.Task) *domain.Task {
	if ref.ID != "" {
		for _, t := range candidates {
			if t.ID == ref.ID {
				return t
			}
		}
		return nil
	}

	frag := strings.ToLower(strings.TrimSpace(ref.Title))
	if frag == "" {
		return nil
	}
	for _, t := range candidates {
		title := strings.ToLower(t.Title)
		if strings.Contains(title, frag) || strings.Contains(frag, title) {
			return t
		}
	}
	return nil
}

// ResolveUser maps a name fragment to at most one user from the candidate
// set, using the same bidirectional containment rule as ResolveTask. The
// contact handle (email) is matched as well as the display name. Callers
// pre-filter candidates to the assignable pool (team members with the
// member role).
func ResolveUser(fragment string, candidates []*domain.User) *domain.User {
	frag := strings.ToLower(strings.TrimSpace(fragment))
	if frag == "" {
		return nil
	}
	for _, u := range candidates {
		name := strings.ToLower(u.Name)
		email := strings.ToLower(u.Email)
		if strings.Contains(name, frag) || strings.Contains(frag, name) {
			return u
		}
		if strings.Contains(email, frag) || strings.Contains(frag, email) {
			return u
		}
	}
	return nil
}
