package youtube

import (
	"testing"

	"github.com/promoscan/promoscan/models"
)

func TestParseChannelReference(t *testing.T) {
	cases := []struct {
		input string
		kind  models.ChannelRefKind
		value string
	}{
		{"https://www.youtube.com/channel/UC6nSFpj9HTCZ5t-N3Rm3-HA", models.ChannelRefID, "UC6nSFpj9HTCZ5t-N3Rm3-HA"},
		{"https://youtube.com/user/vsauce", models.ChannelRefUsername, "vsauce"},
		{"https://www.youtube.com/@veritasium", models.ChannelRefHandle, "@veritasium"},
		{"https://www.youtube.com/c/MadeByGoogle", models.ChannelRefCustom, "MadeByGoogle"},
		{"UC6nSFpj9HTCZ5t-N3Rm3-HA", models.ChannelRefID, "UC6nSFpj9HTCZ5t-N3Rm3-HA"},
		{"@veritasium", models.ChannelRefHandle, "@veritasium"},
		{"  @veritasium  ", models.ChannelRefHandle, "@veritasium"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.ChannelRefUnknown, "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"some channel name", models.ChannelRefUnknown, "some channel name"},
	}

	for _, item := range cases {
		spec := ParseChannelReference(item.input)
		if spec.Kind != item.kind {
			t.Errorf("%q: expected kind %q, got %q", item.input, item.kind, spec.Kind)
		}
		if spec.Value != item.value {
			t.Errorf("%q: expected value %q, got %q", item.input, item.value, spec.Value)
		}
	}
}

func TestParseChannelReferencePathPriority(t *testing.T) {
	// an explicit ID path wins even when another shape also appears
	spec := ParseChannelReference("https://www.youtube.com/channel/UCabcdefghij1234567890/@decoy")
	if spec.Kind != models.ChannelRefID {
		t.Fatalf("expected channel ID to win, got %q", spec.Kind)
	}
	if spec.Value != "UCabcdefghij1234567890" {
		t.Fatalf("unexpected value %q", spec.Value)
	}
}
