package analysis

import (
	"testing"
	"time"

	"github.com/promoscan/promoscan/models"
)

func video(id, description string) models.VideoDetail {
	return models.VideoDetail{
		VideoID:     id,
		Title:       "video " + id,
		Description: description,
		PublishedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDetectPromotionsGroupsAcrossVideos(t *testing.T) {
	videos := []models.VideoDetail{
		video("a", "My Microphone: https://example.com/mic?utm_source=yt"),
		video("b", "My Microphone: https://example.com/mic?utm_source=video2"),
	}

	promotions := DetectPromotions(videos)
	if len(promotions) != 1 {
		t.Fatalf("expected one promotion, got %d", len(promotions))
	}

	promotion := promotions[0]
	if promotion.Occurrences != 2 {
		t.Fatalf("expected 2 occurrences, got %d", promotion.Occurrences)
	}
	if promotion.Domain != "example.com" {
		t.Fatalf("unexpected domain %q", promotion.Domain)
	}
	if promotion.ProductName != "My Microphone" {
		t.Fatalf("unexpected product name %q", promotion.ProductName)
	}
	if promotion.URL != "https://example.com/mic" {
		t.Fatalf("tracking parameters must be stripped, got %q", promotion.URL)
	}
	if len(promotion.Videos) != 2 {
		t.Fatalf("expected both videos referenced, got %d", len(promotion.Videos))
	}
}

func TestDetectPromotionsSkipsSocialLinks(t *testing.T) {
	videos := []models.VideoDetail{
		video("a", "Follow me: https://www.instagram.com/someone\nSupport: https://patreon.com/someone\nLamp: https://shop.example.com/lamp"),
	}

	promotions := DetectPromotions(videos)
	if len(promotions) != 1 {
		t.Fatalf("expected only the shop link, got %d", len(promotions))
	}
	if promotions[0].Domain != "shop.example.com" {
		t.Fatalf("unexpected domain %q", promotions[0].Domain)
	}
}

func TestDetectPromotionsFallsBackToURLKey(t *testing.T) {
	// no usable product text before the link
	videos := []models.VideoDetail{
		video("a", "https://example.com/thing"),
		video("b", "https://example.com/thing"),
	}

	promotions := DetectPromotions(videos)
	if len(promotions) != 1 {
		t.Fatalf("expected the identical links grouped, got %d", len(promotions))
	}
	if promotions[0].ProductName != "" {
		t.Fatalf("expected empty product name, got %q", promotions[0].ProductName)
	}
	if promotions[0].Occurrences != 2 {
		t.Fatalf("expected 2 occurrences, got %d", promotions[0].Occurrences)
	}
}

func TestDetectPromotionsSortsByOccurrences(t *testing.T) {
	videos := []models.VideoDetail{
		video("a", "Desk: https://a-store.com/desk\nChair: https://b-store.com/chair"),
		video("b", "Chair: https://b-store.com/chair"),
	}

	promotions := DetectPromotions(videos)
	if len(promotions) != 2 {
		t.Fatalf("expected 2 promotions, got %d", len(promotions))
	}
	if promotions[0].ProductName != "Chair" || promotions[0].Occurrences != 2 {
		t.Fatalf("expected the recurring promotion first, got %+v", promotions[0])
	}
}

func TestDetectPromotionsEmptyDescriptions(t *testing.T) {
	promotions := DetectPromotions([]models.VideoDetail{video("a", ""), video("b", "no links here")})
	if len(promotions) != 0 {
		t.Fatalf("expected no promotions, got %d", len(promotions))
	}
}
