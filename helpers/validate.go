package helpers

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var dangerousInputPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)data:`),
	regexp.MustCompile(`(?i)vbscript:`),
}

var (
	youtubeHost   = regexp.MustCompile(`(?i)^(www\.|m\.)?(youtube\.com|youtu\.be)$`)
	channelIDForm = regexp.MustCompile(`(?i)^UC[\w-]+$`)
	handleForm    = regexp.MustCompile(`^@[\w.-]{1,50}$`)
	domainForm    = regexp.MustCompile(`(?i)^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)*\.[a-z]{2,}$`)
)

// ValidateChannelInput sanity-checks a user-supplied channel reference
// before any quota is spent. It returns the trimmed input on success.
func ValidateChannelInput(input string) (string, error) {
	trimmed := strings.TrimSpace(input)

	if len(trimmed) < 2 {
		return "", errors.New("input is too short")
	}
	if len(trimmed) > 500 {
		return "", errors.New("input is too long")
	}

	for _, pattern := range dangerousInputPatterns {
		if pattern.MatchString(trimmed) {
			return "", errors.New("invalid characters in input")
		}
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return "", errors.New("invalid URL format")
		}
		if !youtubeHost.MatchString(parsed.Hostname()) {
			return "", errors.New("only YouTube URLs are allowed")
		}
	}

	if channelIDForm.MatchString(trimmed) {
		if len(trimmed) < 20 || len(trimmed) > 30 {
			return "", errors.New("invalid channel ID format")
		}
	}

	if strings.HasPrefix(trimmed, "@") && !handleForm.MatchString(trimmed) {
		return "", errors.New("invalid handle format")
	}

	return trimmed, nil
}

// ValidateDomainInput normalizes and validates a domain filter value.
func ValidateDomainInput(input string) (string, error) {
	domain := strings.ToLower(strings.TrimSpace(input))

	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	// path-based filters (domain.com/affiliate) keep their path part
	if idx := strings.IndexByte(domain, ':'); idx >= 0 && !strings.Contains(domain[:idx], "/") {
		domain = domain[:idx]
	}

	host := domain
	if idx := strings.IndexByte(domain, '/'); idx >= 0 {
		host = domain[:idx]
	}

	if len(host) < 3 || len(host) > 253 {
		return "", errors.New("invalid domain length")
	}
	if !domainForm.MatchString(host) {
		return "", errors.New("invalid domain format")
	}

	return domain, nil
}
