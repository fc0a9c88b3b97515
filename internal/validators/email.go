package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// EmailDomainCheck reports whether an address can plausibly receive mail.
type EmailDomainCheck func(ctx context.Context, email string) bool

// IsEmailDomainValid accepts an address whose domain publishes MX records,
// or failing that resolves to an address.
func IsEmailDomainValid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := net.DefaultResolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}

// AnyEmailDomain skips the DNS lookup.
func AnyEmailDomain(_ context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}
