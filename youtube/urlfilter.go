package youtube

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/promoscan/promoscan/models"
)

const (
	channelIDPath = `(?i)/channel/(UC[\w-]+)`
	usernamePath  = `(?i)/user/([\w.-]+)`
	handlePath    = `/(@[\w.-]+)`
	customPath    = `(?i)/c/([\w.-]+)`

	bareChannelID = `(?i)^UC[\w-]+$`
	bareHandle    = `^@[\w.-]+$`
)

type pathPattern struct {
	re   *regexp.Regexp
	kind models.ChannelRefKind
}

// Tried in priority order: an explicit-ID path wins over the looser shapes.
var channelPathPatterns = []pathPattern{
	{regexp.MustCompile(channelIDPath), models.ChannelRefID},
	{regexp.MustCompile(usernamePath), models.ChannelRefUsername},
	{regexp.MustCompile(handlePath), models.ChannelRefHandle},
	{regexp.MustCompile(customPath), models.ChannelRefCustom},
}

var (
	bareChannelIDRegexp = regexp.MustCompile(bareChannelID)
	bareHandleRegexp    = regexp.MustCompile(bareHandle)
)

// ParseChannelReference normalizes heterogeneous user input (full URL,
// handle, legacy username, bare ID) into a ChannelSpec. Anything it cannot
// recognize is tagged unknown and later passed through as a search query.
func ParseChannelReference(raw string) models.ChannelSpec {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if parsed, err := url.Parse(trimmed); err == nil {
			for _, pattern := range channelPathPatterns {
				if match := pattern.re.FindStringSubmatch(parsed.Path); match != nil {
					return models.ChannelSpec{Kind: pattern.kind, Value: match[1]}
				}
			}
		}
		return models.ChannelSpec{Kind: models.ChannelRefUnknown, Value: raw}
	}

	if bareChannelIDRegexp.MatchString(trimmed) {
		return models.ChannelSpec{Kind: models.ChannelRefID, Value: trimmed}
	}
	if bareHandleRegexp.MatchString(trimmed) {
		return models.ChannelSpec{Kind: models.ChannelRefHandle, Value: trimmed}
	}

	return models.ChannelSpec{Kind: models.ChannelRefUnknown, Value: raw}
}
