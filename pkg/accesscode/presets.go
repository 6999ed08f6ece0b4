package accesscode

import "docgentor-be/pkg/environment"

// Fallback codes only work outside production.
const (
	AdminFallbackCode     = "admin-local-docgentor"
	DeveloperFallbackCode = "dev-trial-docgentor"
)

func NewAdminValidator(secret, hash string, env environment.Environment, logger Logger) *Validator {
	return New(Config{
		Kind:           "admin",
		Secret:         secret,
		Hash:           hash,
		Fallback:       AdminFallbackCode,
		GrantedMessage: "Admin access granted.",
		DeniedMessage:  "Invalid admin code.",
	}, env, logger)
}

func NewDeveloperValidator(secret, hash string, env environment.Environment, logger Logger) *Validator {
	return New(Config{
		Kind:           "developer",
		Secret:         secret,
		Hash:           hash,
		Fallback:       DeveloperFallbackCode,
		GrantedMessage: "Developer trial access granted.",
		DeniedMessage:  "Invalid developer trial code.",
	}, env, logger)
}
