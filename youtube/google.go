package youtube

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/promoscan/promoscan/models"
	youtubeAPI "google.golang.org/api/youtube/v3"
)

// googleAPI is the real upstream, backed by the google API client.
type googleAPI struct {
	yt *youtubeAPI.Service
}

func (g *googleAPI) channelByUsername(ctx context.Context, username string) (string, error) {
	response, err := g.yt.Channels.List([]string{"id"}).
		ForUsername(username).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(response.Items) < 1 {
		return "", nil
	}
	return response.Items[0].Id, nil
}

func (g *googleAPI) searchChannel(ctx context.Context, query string) (string, error) {
	response, err := g.yt.Search.List([]string{"snippet"}).
		Type("channel").
		MaxResults(1).
		Q(query).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(response.Items) < 1 {
		return "", nil
	}

	item := response.Items[0]
	if item.Snippet != nil && item.Snippet.ChannelId != "" {
		return item.Snippet.ChannelId, nil
	}
	if item.Id != nil {
		return item.Id.ChannelId, nil
	}
	return "", nil
}

func (g *googleAPI) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	response, err := g.yt.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(response.Items) < 1 || response.Items[0].ContentDetails == nil ||
		response.Items[0].ContentDetails.RelatedPlaylists == nil {
		return "", nil
	}
	return response.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

func (g *googleAPI) channelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error) {
	response, err := g.yt.Channels.List([]string{"snippet"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	info := &models.ChannelInfo{ID: channelID, Title: "Unknown Channel"}
	if len(response.Items) > 0 && response.Items[0].Snippet != nil {
		snippet := response.Items[0].Snippet
		info.Title = snippet.Title
		if snippet.Thumbnails != nil && snippet.Thumbnails.Default != nil {
			info.Thumbnail = snippet.Thumbnails.Default.Url
		}
	}
	return info, nil
}

func (g *googleAPI) playlistPage(ctx context.Context, playlistID, pageToken string) ([]*youtubeAPI.PlaylistItem, string, error) {
	call := g.yt.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(uploadsPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, "", err
	}
	return response.Items, response.NextPageToken, nil
}

func (g *googleAPI) videosByID(ctx context.Context, ids []string) ([]*youtubeAPI.Video, error) {
	response, err := g.yt.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return response.Items, nil
}

func videoDetailFromAPI(video *youtubeAPI.Video) models.VideoDetail {
	detail := models.VideoDetail{VideoID: video.Id}

	if video.Snippet != nil {
		detail.Title = video.Snippet.Title
		detail.Description = video.Snippet.Description
		if t, err := time.Parse(time.RFC3339, video.Snippet.PublishedAt); err == nil {
			detail.PublishedAt = t
		}
	}
	if video.Statistics != nil {
		detail.ViewCount = int64(video.Statistics.ViewCount)
		detail.LikeCount = int64(video.Statistics.LikeCount)
		detail.CommentCount = int64(video.Statistics.CommentCount)
	}
	if video.ContentDetails != nil {
		detail.DurationSeconds = parseISODuration(video.ContentDetails.Duration)
	}
	return detail
}

var isoDurationRegexp = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISODuration converts the API's ISO-8601 durations (PT1H2M3S) to
// seconds, 0 when the value does not parse.
func parseISODuration(value string) int64 {
	match := isoDurationRegexp.FindStringSubmatch(value)
	if match == nil {
		return 0
	}

	var seconds int64
	multipliers := []int64{86400, 3600, 60, 1}
	for i, m := range multipliers {
		if match[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(match[i+1], 10, 64)
		if err != nil {
			return 0
		}
		seconds += n * m
	}
	return seconds
}
