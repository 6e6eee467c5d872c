package helpers

import (
	"strings"
	"testing"
)

func TestValidateChannelInputAccepted(t *testing.T) {
	cases := []string{
		"UC6nSFpj9HTCZ5t-N3Rm3-HA",
		"@veritasium",
		"https://www.youtube.com/channel/UC6nSFpj9HTCZ5t-N3Rm3-HA",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://m.youtube.com/@handle",
		"some channel name",
	}

	for _, input := range cases {
		if _, err := ValidateChannelInput(input); err != nil {
			t.Errorf("%q: expected accepted, got %v", input, err)
		}
	}
}

func TestValidateChannelInputTrims(t *testing.T) {
	trimmed, err := ValidateChannelInput("  @veritasium  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trimmed != "@veritasium" {
		t.Fatalf("expected trimmed input, got %q", trimmed)
	}
}

func TestValidateChannelInputRejected(t *testing.T) {
	cases := []string{
		"x",
		strings.Repeat("a", 501),
		"<script>alert(1)</script>",
		"javascript:alert(1)",
		"abc onload=alert(1)",
		"https://evil.com/channel/UCabcdefghij1234567890",
		"UCshort",
		"@" + strings.Repeat("h", 51),
	}

	for _, input := range cases {
		if _, err := ValidateChannelInput(input); err == nil {
			t.Errorf("%q: expected rejection", input)
		}
	}
}

func TestValidateDomainInputNormalizes(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"example.com", "example.com"},
		{"HTTPS://WWW.Example.com", "example.com"},
		{"http://shop.example.com", "shop.example.com"},
		{"example.com:8080", "example.com"},
		{"example.com/affiliate", "example.com/affiliate"},
		{"  example.com  ", "example.com"},
	}

	for _, item := range cases {
		got, err := ValidateDomainInput(item.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", item.input, err)
			continue
		}
		if got != item.want {
			t.Errorf("%q: expected %q, got %q", item.input, item.want, got)
		}
	}
}

func TestValidateDomainInputRejected(t *testing.T) {
	cases := []string{
		"",
		"ab",
		"no_tld",
		"-leading.com",
		strings.Repeat("a", 254) + ".com",
	}

	for _, input := range cases {
		if _, err := ValidateDomainInput(input); err == nil {
			t.Errorf("%q: expected rejection", input)
		}
	}
}
