package linkcheck

import (
	"net/url"
	"sort"
	"strings"

	"github.com/promoscan/promoscan/helpers"
	"github.com/promoscan/promoscan/models"
)

// LinkGroup is one unique external URL and the videos that reference it.
type LinkGroup struct {
	URL    string            `json:"url"`
	Domain string            `json:"domain"`
	Videos []models.VideoRef `json:"videos"`
}

// CollectLinks extracts the unique external URLs from video descriptions,
// skipping YouTube-internal links and, when $domainFilter is set, anything
// that does not match it. Groups are sorted most-referenced first.
func CollectLinks(videos []models.VideoDetail, domainFilter string) []LinkGroup {
	groups := make(map[string]*LinkGroup)
	order := make([]string, 0)

	for _, video := range videos {
		for _, u := range helpers.ExtractURLs(video.Description) {
			domain := helpers.DomainFromURL(u)
			if strings.Contains(domain, "youtube.com") || strings.Contains(domain, "youtu.be") {
				continue
			}
			if domainFilter != "" && !MatchesDomainFilter(u, domainFilter) {
				continue
			}

			group, ok := groups[u]
			if !ok {
				group = &LinkGroup{URL: u, Domain: domain}
				groups[u] = group
				order = append(order, u)
			}
			group.Videos = append(group.Videos, models.VideoRef{
				VideoID:     video.VideoID,
				Title:       video.Title,
				PublishedAt: video.PublishedAt,
			})
		}
	}

	result := make([]LinkGroup, 0, len(order))
	for _, u := range order {
		result = append(result, *groups[u])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return len(result[i].Videos) > len(result[j].Videos)
	})
	return result
}

// MatchesDomainFilter reports whether $rawURL matches $filter. Supported
// filter shapes: exact domain, subdomain (sub.domain.com vs domain.com in
// either direction), and path prefixes (domain.com/affiliate).
func MatchesDomainFilter(rawURL, filter string) bool {
	if filter == "" {
		return true
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return false
	}

	hostname := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	fullPath := hostname + strings.ToLower(parsed.Path)
	filter = strings.TrimPrefix(strings.ToLower(filter), "www.")

	if strings.Contains(filter, "/") {
		return strings.HasPrefix(fullPath, filter) || strings.Contains(fullPath, filter)
	}
	if hostname == filter {
		return true
	}
	if strings.HasSuffix(hostname, "."+filter) {
		return true
	}
	if strings.HasSuffix(filter, "."+hostname) {
		return true
	}
	return strings.Contains(hostname, filter)
}
