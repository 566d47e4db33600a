package user

import (
	"strings"

	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
)

// Resolver decides who may sign in and with which role. It is built once from
// configuration and is safe for concurrent use.
type Resolver struct {
	allowedDomains []string
	adminEmails    map[string]struct{}
}

func NewResolver(allowedDomains, adminEmails []string) *Resolver {
	r := &Resolver{adminEmails: make(map[string]struct{}, len(adminEmails))}
	for _, d := range allowedDomains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "@"))
		if d != "" {
			r.allowedDomains = append(r.allowedDomains, d)
		}
	}
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			r.adminEmails[e] = struct{}{}
		}
	}
	return r
}

// IsAllowedEmail reports whether email belongs to one of the allowed domains or
// a subdomain of one. Malformed addresses are never allowed.
func (r *Resolver) IsAllowedEmail(email string) bool {
	domain, ok := validator.EmailDomain(email)
	if !ok {
		return false
	}
	for _, allowed := range r.allowedDomains {
		if domain == allowed || strings.HasSuffix(domain, "."+allowed) {
			return true
		}
	}
	return false
}

// DetermineRole returns ADMIN for configured admin addresses and TRAINER for
// everyone else. VIEWER is only ever assigned explicitly.
func (r *Resolver) DetermineRole(email string) Role {
	if _, ok := r.adminEmails[strings.ToLower(strings.TrimSpace(email))]; ok {
		return RoleAdmin
	}
	return RoleTrainer
}
