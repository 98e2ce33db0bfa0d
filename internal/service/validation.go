package service

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/user-service/internal/entity"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "US"

// normalizeEmail lower-cases the address and converts its domain to ASCII.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return "", invalid("invalid email address")
	}

	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || !isDomainValid(asciiDomain) {
		return "", invalid("invalid email address")
	}

	email = local + "@" + asciiDomain
	if !emailPattern.MatchString(email) {
		return "", invalid("invalid email address")
	}
	return email, nil
}

// normalizePhone returns the E.164 form of numbers valid for region and
// the trimmed input otherwise. Only a blank value is rejected.
func normalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("phone number is required")
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return raw, nil
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

func normalizeRole(raw string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(raw))
	switch role {
	case entity.RoleAdmin, entity.RoleUser:
		return role, nil
	default:
		return "", invalid("invalid role")
	}
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
