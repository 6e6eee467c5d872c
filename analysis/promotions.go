// Package analysis holds the pure transformations features apply to the
// video records the ingestion layer produces. No quota, no I/O.
package analysis

import (
	"sort"
	"strings"

	"github.com/promoscan/promoscan/helpers"
	"github.com/promoscan/promoscan/models"
)

// Promotion is one recurring promoted product/link across a channel's
// uploads, grouped by domain and guessed product name.
type Promotion struct {
	Key         string            `json:"key"`
	Domain      string            `json:"domain"`
	URL         string            `json:"url"`
	ProductName string            `json:"productName"`
	Occurrences int               `json:"occurrences"`
	Videos      []models.VideoRef `json:"videos"`
}

// DetectPromotions scans video descriptions for promotion links: URLs are
// normalized (tracking parameters stripped), social/profile links are
// skipped, and the remainder is grouped by domain plus the product name
// guessed from the description line carrying the link.
func DetectPromotions(videos []models.VideoDetail) []Promotion {
	byKey := make(map[string]*Promotion)

	for _, video := range videos {
		lines := descriptionLines(video.Description)

		for _, raw := range helpers.ExtractURLs(video.Description) {
			normalized := helpers.NormalizeURL(raw)
			domain := helpers.DomainFromURL(normalized)
			if helpers.SocialMediaFilter.MatchString(domain) {
				continue
			}

			line := ""
			for _, candidate := range lines {
				if strings.Contains(candidate, raw) {
					line = candidate
					break
				}
			}
			productName := helpers.GuessProductNameFromLine(line, raw)

			key := domain + "::" + productName
			if productName == "" {
				key = domain + "::" + normalized
			}

			promotion, ok := byKey[key]
			if !ok {
				promotion = &Promotion{
					Key:         key,
					Domain:      domain,
					URL:         normalized,
					ProductName: productName,
				}
				byKey[key] = promotion
			}
			promotion.Occurrences++
			promotion.Videos = append(promotion.Videos, models.VideoRef{
				VideoID:     video.VideoID,
				Title:       video.Title,
				PublishedAt: video.PublishedAt,
			})
		}
	}

	promotions := make([]Promotion, 0, len(byKey))
	for _, promotion := range byKey {
		promotions = append(promotions, *promotion)
	}
	sort.Slice(promotions, func(i, j int) bool {
		a, b := promotions[i], promotions[j]
		if a.Occurrences != b.Occurrences {
			return a.Occurrences > b.Occurrences
		}
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		return a.ProductName < b.ProductName
	})
	return promotions
}

func descriptionLines(description string) []string {
	raw := strings.Split(strings.ReplaceAll(description, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
