package youtube

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/promoscan/promoscan/models"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeAPI "google.golang.org/api/youtube/v3"
)

const detailsBatchSize = 50

// upstream is the slice of the YouTube Data API the core needs. The one real
// implementation wraps the google client; tests substitute fakes.
type upstream interface {
	channelByUsername(ctx context.Context, username string) (string, error)
	searchChannel(ctx context.Context, query string) (string, error)
	uploadsPlaylistID(ctx context.Context, channelID string) (string, error)
	channelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error)
	playlistPage(ctx context.Context, playlistID, pageToken string) ([]*youtubeAPI.PlaylistItem, string, error)
	videosByID(ctx context.Context, ids []string) ([]*youtubeAPI.Video, error)
}

// Service is the ingestion layer shared by every feature: it resolves channel
// references, walks upload pages, and hydrates video details, consuming
// ledger budget for each upstream call.
type Service struct {
	api    upstream
	ledger *Ledger
	log    *logrus.Entry
}

func NewService(ctx context.Context, apiKey string, ledger *Ledger, log *logrus.Entry) (*Service, error) {
	yt, err := youtubeAPI.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "youtube client init")
	}
	return &Service{api: &googleAPI{yt: yt}, ledger: ledger, log: log}, nil
}

// Ledger exposes the quota ledger this service consumes from.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// ResolveChannelID maps a parsed channel reference to its canonical ID. An
// explicit ID is free; a legacy username costs one lookup unit; everything
// else (and a username lookup that came back empty) falls back to a channel
// search at the much larger search cost, consumed exactly once even when the
// search yields nothing.
func (s *Service) ResolveChannelID(ctx context.Context, spec models.ChannelSpec) (string, error) {
	if spec.Kind == models.ChannelRefID {
		return spec.Value, nil
	}

	if spec.Kind == models.ChannelRefUsername {
		if _, err := s.ledger.Consume(LookupQuotaCost); err != nil {
			return "", err
		}
		id, err := s.api.channelByUsername(ctx, spec.Value)
		if err != nil {
			return "", s.upstreamErr("channels.list", err)
		}
		if id != "" {
			return id, nil
		}
	}

	query := strings.TrimPrefix(spec.Value, "@")
	if _, err := s.ledger.Consume(SearchQuotaCost); err != nil {
		return "", err
	}
	id, err := s.api.searchChannel(ctx, query)
	if err != nil {
		return "", s.upstreamErr("search.list", err)
	}
	if id == "" {
		return "", &UnresolvableError{Input: spec.Value}
	}
	return id, nil
}

// UploadsPlaylistID looks up the uploads playlist backing a channel's upload
// listing. Costs one lookup unit.
func (s *Service) UploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	if _, err := s.ledger.Consume(LookupQuotaCost); err != nil {
		return "", err
	}
	playlistID, err := s.api.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return "", s.upstreamErr("channels.list", err)
	}
	if playlistID == "" {
		return "", errors.New("uploads playlist not available for this channel")
	}
	return playlistID, nil
}

// ChannelInfo fetches display metadata for a channel. Costs one lookup unit.
func (s *Service) ChannelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error) {
	if _, err := s.ledger.Consume(LookupQuotaCost); err != nil {
		return nil, err
	}
	info, err := s.api.channelInfo(ctx, channelID)
	if err != nil {
		return nil, s.upstreamErr("channels.list", err)
	}
	return info, nil
}

// FetchVideoDetails hydrates the given video IDs in chunks of 50, one batch
// call and one ledger unit per chunk. IDs that no longer exist upstream are
// silently omitted.
func (s *Service) FetchVideoDetails(ctx context.Context, ids []string) ([]models.VideoDetail, error) {
	details := make([]models.VideoDetail, 0, len(ids))

	for start := 0; start < len(ids); start += detailsBatchSize {
		end := start + detailsBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		if _, err := s.ledger.Consume(BatchQuotaCost); err != nil {
			return nil, err
		}
		videos, err := s.api.videosByID(ctx, ids[start:end])
		if err != nil {
			return nil, s.upstreamErr("videos.list", err)
		}
		for _, video := range videos {
			details = append(details, videoDetailFromAPI(video))
		}
	}

	return details, nil
}

// upstreamErr classifies an upstream failure once at its origin. A remote
// quota rejection also exhausts the local ledger so subsequent requests fail
// fast without spending another call.
func (s *Service) upstreamErr(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusForbidden && isQuotaReason(gerr) {
			s.log.Warn("upstream reported quota exceeded, marking ledger exhausted")
			s.ledger.MarkExhausted()
			return &QuotaExceededError{Status: s.ledger.Status(), Upstream: true}
		}
		return &UpstreamError{Op: op, Code: gerr.Code, Message: truncateMessage(gerr.Message, 100)}
	}
	return errors.Wrap(err, op)
}

func isQuotaReason(gerr *googleapi.Error) bool {
	for _, item := range gerr.Errors {
		if item.Reason == "quotaExceeded" || item.Reason == "dailyLimitExceeded" {
			return true
		}
	}
	return strings.Contains(gerr.Message, "quota")
}
