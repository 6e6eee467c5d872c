package models

import "time"

// ChannelRefKind tags the shape of a user-supplied channel reference.
type ChannelRefKind string

const (
	ChannelRefID       ChannelRefKind = "channelId"
	ChannelRefUsername ChannelRefKind = "username"
	ChannelRefHandle   ChannelRefKind = "handle"
	ChannelRefCustom   ChannelRefKind = "custom"
	ChannelRefUnknown  ChannelRefKind = "unknown"
)

// ChannelSpec is the parsed form of a channel reference. Derived once per
// resolution call, never persisted.
type ChannelSpec struct {
	Kind  ChannelRefKind
	Value string
}

type ChannelInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// UploadItem is the minimal per-video shape produced by the upload collector,
// just enough for the cutoff decision.
type UploadItem struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"publishedAt"`
}

// VideoDetail is an UploadItem enriched by the bulk detail fetcher.
type VideoDetail struct {
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PublishedAt     time.Time `json:"publishedAt"`
	ViewCount       int64     `json:"viewCount,omitempty"`
	LikeCount       int64     `json:"likeCount,omitempty"`
	CommentCount    int64     `json:"commentCount,omitempty"`
	DurationSeconds int64     `json:"durationSeconds,omitempty"`
}

// VideoRef points back at a video from an aggregated result (a promotion or
// a link group).
type VideoRef struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"publishedAt"`
}

// LinkProbeResult is the outcome of one URL liveness probe. Working is nil
// for URLs beyond the per-request probe cap, which are intentionally left
// unchecked.
type LinkProbeResult struct {
	URL         string `json:"url"`
	Working     *bool  `json:"working"`
	Status      int    `json:"status,omitempty"`
	Error       string `json:"error,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Unchecked   bool   `json:"unchecked,omitempty"`
}
