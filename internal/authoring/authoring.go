// Package authoring resolves the identity that gets attached to an event as
// its author, falling back through explicit input, the environment, the
// repository's git config, and finally fixed defaults.
package authoring

import (
	"os"

	"git-issue.sh/core/internal/domain"
	"git-issue.sh/core/internal/gitrepo"
)

// EnvLookup abstracts environment variable access so the resolution chain
// can be tested without touching the real process environment.
type EnvLookup interface {
	Lookup(key string) (string, bool)
}

// OSEnv looks variables up in the real process environment.
type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

const (
	fallbackName  = "Unknown"
	fallbackEmail = "unknown@localhost"
)

// Resolve builds the author Identity for an operation, consulting in
// order: the explicit name/email arguments (nil means "not provided"),
// GIT_AUTHOR_NAME/GIT_AUTHOR_EMAIL, the repository's user.name/user.email
// config, USER (name only), and finally the literal Unknown/
// unknown@localhost fallback.
func Resolve(repo *gitrepo.Repo, env EnvLookup, explicitName, explicitEmail *string) domain.Identity {
	if env == nil {
		env = OSEnv{}
	}

	name := fallbackName
	if explicitName != nil && *explicitName != "" {
		name = *explicitName
	} else if v, ok := env.Lookup("GIT_AUTHOR_NAME"); ok && v != "" {
		name = v
	} else if v, ok := repo.ConfigValue("user", "name"); ok && v != "" {
		name = v
	} else if v, ok := env.Lookup("USER"); ok && v != "" {
		name = v
	}

	email := fallbackEmail
	if explicitEmail != nil && *explicitEmail != "" {
		email = *explicitEmail
	} else if v, ok := env.Lookup("GIT_AUTHOR_EMAIL"); ok && v != "" {
		email = v
	} else if v, ok := repo.ConfigValue("user", "email"); ok && v != "" {
		email = v
	}

	return domain.NewIdentity(name, email)
}
