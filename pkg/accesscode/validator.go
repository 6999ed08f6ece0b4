// Package accesscode checks submitted administrator and developer-trial codes
// against configured secrets. Validation never mutates state; activating
// whatever the code unlocks is the caller's job.
package accesscode

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"docgentor-be/pkg/environment"

	"golang.org/x/crypto/bcrypt"
)

// Method names which check accepted a code. It is logged, never returned to
// clients.
type Method string

const (
	MethodNone     Method = ""
	MethodSecret   Method = "secret"
	MethodHash     Method = "hash"
	MethodFallback Method = "fallback"
)

// Result is the outcome of a validation. Invalid results always carry the
// same message for a given validator.
type Result struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
	Method  Method `json:"-"`
}

// Logger is the slice of logger.ILogger the validators need.
type Logger interface {
	Warn(module, message string, details map[string]interface{})
}

type Config struct {
	// Kind labels log lines and metrics ("admin", "developer").
	Kind string
	// Secret is compared verbatim. Empty disables the method.
	Secret string
	// Hash is a hex SHA-256 digest or a bcrypt hash of the secret. Empty
	// disables the method.
	Hash string
	// Fallback is accepted only outside production.
	Fallback string

	GrantedMessage string
	DeniedMessage  string
}

type Validator struct {
	cfg    Config
	env    environment.Environment
	logger Logger
}

func New(cfg Config, env environment.Environment, logger Logger) *Validator {
	return &Validator{cfg: cfg, env: env, logger: logger}
}

func (v *Validator) Kind() string {
	return v.cfg.Kind
}

// Validate runs secret, hash and fallback checks in that order; first match
// wins.
func (v *Validator) Validate(code string) Result {
	if code == "" {
		return v.deny(code)
	}

	if v.cfg.Secret != "" && constantTimeEqual(code, v.cfg.Secret) {
		return Result{IsValid: true, Message: v.cfg.GrantedMessage, Method: MethodSecret}
	}

	if v.cfg.Hash != "" && matchesHash(code, v.cfg.Hash) {
		return Result{IsValid: true, Message: v.cfg.GrantedMessage, Method: MethodHash}
	}

	if !v.env.IsProduction() && v.cfg.Fallback != "" && constantTimeEqual(code, v.cfg.Fallback) {
		if v.logger != nil {
			v.logger.Warn("ACCESS_CODE", "Fallback code accepted; configure a real secret before production", map[string]interface{}{
				"kind":        v.cfg.Kind,
				"environment": string(v.env),
			})
		}
		return Result{IsValid: true, Message: v.cfg.GrantedMessage + " (development mode)", Method: MethodFallback}
	}

	return v.deny(code)
}

func (v *Validator) deny(code string) Result {
	if v.logger != nil {
		v.logger.Warn("ACCESS_CODE", "Failed code attempt", map[string]interface{}{
			"kind":    v.cfg.Kind,
			"attempt": Redact(code),
		})
	}
	return Result{IsValid: false, Message: v.cfg.DeniedMessage}
}

// Redact keeps the first three characters of a submitted code so that logs
// never hold a full secret.
func Redact(code string) string {
	r := []rune(code)
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r) + "***"
}

// HashSHA256 returns the hex digest accepted in the Hash setting.
func HashSHA256(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

func matchesHash(code, hash string) bool {
	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
	}
	return constantTimeEqual(HashSHA256(code), strings.ToLower(hash))
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
