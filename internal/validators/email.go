package validators

import (
	"net"
	"net/mail"
	"strings"
)

// resolvers are swapped in tests.
var (
	lookupMX   = net.LookupMX
	lookupHost = net.LookupHost
)

// IsEmailFormatValid reports whether email is a bare address with a dotted
// domain. Display names and surrounding spaces are rejected.
func IsEmailFormatValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	return strings.Contains(emailDomain(email), ".")
}

// IsEmailDomainValid reports whether email is well formed and its domain
// accepts mail (MX record) or at least resolves.
func IsEmailDomainValid(email string) bool {
	if !IsEmailFormatValid(email) {
		return false
	}

	domain := emailDomain(email)

	if mx, err := lookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	if hosts, err := lookupHost(domain); err == nil && len(hosts) > 0 {
		return true
	}
	return false
}

func emailDomain(email string) string {
	return email[strings.LastIndex(email, "@")+1:]
}
