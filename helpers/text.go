package helpers

import (
	"net/url"
	"regexp"
	"strings"

	"mvdan.cc/xurls"
)

// SocialMediaFilter matches domains of social/profile/donation links that are
// not product promotions.
var SocialMediaFilter = regexp.MustCompile(`(?i)(patreon|instagram|twitter|x\.com|facebook|tiktok|threads\.net|linkedin|discord|paypal|buymeacoffee|linktr|linktree|beacons\.ai|bitly\.page)`)

var trailingPunctuation = regexp.MustCompile(`[)\],.;:"'!?\s]+$`)

// trackingParams get stripped by NormalizeURL so the same destination links
// group together across videos.
var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"tag", "ascsubtag", "source", "ref", "aff", "aff_id", "affid",
}

// ExtractURLs pulls http(s) URLs out of free text (video descriptions).
func ExtractURLs(text string) []string {
	if text == "" {
		return nil
	}

	found := xurls.Strict.FindAllString(text, -1)
	urls := make([]string, 0, len(found))
	for _, u := range found {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		urls = append(urls, trailingPunctuation.ReplaceAllString(u, ""))
	}
	return urls
}

// DomainFromURL returns the lowercased hostname without a www. prefix,
// "unknown" when the URL does not parse.
func DomainFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return "unknown"
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

// NormalizeURL strips affiliate/tracking query parameters.
func NormalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	for _, param := range trackingParams {
		query.Del(param)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

var productNameSplitter = regexp.MustCompile(`[:\-–|\\]`)
var genericProductWords = regexp.MustCompile(`(?i)^(link|product|buy|amazon|gear)$`)

// GuessProductNameFromLine takes the description line containing $u and
// guesses the promoted product from the text before the URL.
func GuessProductNameFromLine(line, u string) string {
	before := line
	if idx := strings.Index(line, u); idx > -1 {
		before = line[:idx]
	}
	before = strings.TrimSpace(before)

	parts := productNameSplitter.Split(before, -1)
	candidates := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			candidates = append(candidates, trimmed)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	guess := candidates[len(candidates)-1]
	if len(guess) >= 3 && !genericProductWords.MatchString(guess) {
		return guess
	}
	return ""
}
