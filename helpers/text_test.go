package helpers

import "testing"

func TestExtractURLs(t *testing.T) {
	description := "Gear list:\nMic: https://example.com/mic.\nCamera (https://example.com/cam), more at ftp://old.example.com/file"

	urls := ExtractURLs(description)
	if len(urls) != 2 {
		t.Fatalf("expected 2 http(s) urls, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://example.com/mic" {
		t.Fatalf("trailing punctuation must be trimmed, got %q", urls[0])
	}
	if urls[1] != "https://example.com/cam" {
		t.Fatalf("closing bracket must be trimmed, got %q", urls[1])
	}
}

func TestExtractURLsEmptyText(t *testing.T) {
	if urls := ExtractURLs(""); len(urls) != 0 {
		t.Fatalf("expected no urls, got %v", urls)
	}
}

func TestDomainFromURL(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"https://www.Example.com/page", "example.com"},
		{"https://shop.example.com", "shop.example.com"},
		{"http://example.com:8080/x", "example.com"},
		{"not a url", "unknown"},
	}

	for _, item := range cases {
		if got := DomainFromURL(item.input); got != item.want {
			t.Errorf("%q: expected %q, got %q", item.input, item.want, got)
		}
	}
}

func TestNormalizeURLStripsTracking(t *testing.T) {
	got := NormalizeURL("https://example.com/p?utm_source=yt&utm_medium=video&id=42&tag=aff-20")
	if got != "https://example.com/p?id=42" {
		t.Fatalf("expected tracking stripped, got %q", got)
	}
}

func TestNormalizeURLKeepsCleanURLs(t *testing.T) {
	clean := "https://example.com/p?id=42"
	if got := NormalizeURL(clean); got != clean {
		t.Fatalf("expected %q unchanged, got %q", clean, got)
	}
}

func TestGuessProductNameFromLine(t *testing.T) {
	cases := []struct {
		line string
		url  string
		want string
	}{
		{"My Microphone: https://example.com/mic", "https://example.com/mic", "My Microphone"},
		{"Camera - Sony A7IV https://example.com/cam", "https://example.com/cam", "Sony A7IV"},
		{"Link: https://example.com/x", "https://example.com/x", ""},
		{"https://example.com/x", "https://example.com/x", ""},
		{"AB https://example.com/x", "https://example.com/x", ""},
	}

	for _, item := range cases {
		if got := GuessProductNameFromLine(item.line, item.url); got != item.want {
			t.Errorf("%q: expected %q, got %q", item.line, item.want, got)
		}
	}
}

func TestSocialMediaFilter(t *testing.T) {
	social := []string{"patreon.com", "www.instagram.com", "linktr.ee", "x.com"}
	for _, domain := range social {
		if !SocialMediaFilter.MatchString(domain) {
			t.Errorf("%q: expected to be filtered", domain)
		}
	}
	if SocialMediaFilter.MatchString("example.com") {
		t.Error("example.com must not be filtered")
	}
}
