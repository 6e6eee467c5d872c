package youtube

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/promoscan/promoscan/metrics"
	"github.com/promoscan/promoscan/models"
)

const uploadsPageSize = 50

// ErrEnd signals the end of an upload iteration.
var ErrEnd = errors.New("youtube: no more uploads")

// UploadIterator walks a channel's uploads playlist newest-first, one page
// per pull, and ends as soon as an item ages past the cutoff. Pages are
// fetched in strict cursor order; each page costs one ledger unit regardless
// of how many items it returns. Correct cutoff termination depends on the
// upstream returning items newest-first, which the API does not guarantee in
// writing. Not restartable.
type UploadIterator struct {
	svc      *Service
	ctx      context.Context
	playlist string
	cutoff   time.Time

	buf       []models.UploadItem
	pageToken string
	started   bool
	done      bool
	err       error
}

// Uploads returns an iterator over uploads newer than $cutoff. Callers must
// additionally bound consumption with an item cap: a channel with very
// frequent uploads could otherwise exhaust the day's quota in one walk.
func (s *Service) Uploads(ctx context.Context, playlistID string, cutoff time.Time) *UploadIterator {
	return &UploadIterator{
		svc:      s,
		ctx:      ctx,
		playlist: playlistID,
		cutoff:   cutoff,
	}
}

// Next returns the next upload, or ErrEnd when the sequence is exhausted.
// Any other error is fatal to the iteration and returned on every
// subsequent call.
func (it *UploadIterator) Next() (models.UploadItem, error) {
	for {
		if len(it.buf) > 0 {
			item := it.buf[0]
			it.buf = it.buf[1:]
			return item, nil
		}
		if it.done {
			if it.err != nil {
				return models.UploadItem{}, it.err
			}
			return models.UploadItem{}, ErrEnd
		}
		it.fetchPage()
	}
}

func (it *UploadIterator) fetchPage() {
	if it.started && it.pageToken == "" {
		it.done = true
		return
	}
	it.started = true

	if _, err := it.svc.ledger.Consume(PageQuotaCost); err != nil {
		it.fail(err)
		return
	}

	items, next, err := it.svc.api.playlistPage(it.ctx, it.playlist, it.pageToken)
	if err != nil {
		it.fail(it.svc.upstreamErr("playlistItems.list", err))
		return
	}
	metrics.UploadPagesFetched.Add(1)

	for _, item := range items {
		published := ""
		videoID := ""
		title := ""
		if item.ContentDetails != nil {
			published = item.ContentDetails.VideoPublishedAt
			videoID = item.ContentDetails.VideoId
		}
		if item.Snippet != nil {
			title = item.Snippet.Title
			if published == "" {
				published = item.Snippet.PublishedAt
			}
			if videoID == "" && item.Snippet.ResourceId != nil {
				videoID = item.Snippet.ResourceId.VideoId
			}
		}

		// no usable publish timestamp: skipped, not an error
		if published == "" {
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, published)
		if err != nil {
			continue
		}

		if publishedAt.Before(it.cutoff) {
			it.done = true
			break
		}

		it.buf = append(it.buf, models.UploadItem{
			VideoID:     videoID,
			Title:       title,
			PublishedAt: publishedAt,
		})
	}

	it.pageToken = next
	if next == "" {
		it.done = true
	}
}

func (it *UploadIterator) fail(err error) {
	it.err = err
	it.done = true
}

// CollectUploads drains an iterator into a slice, stopping at $limit items.
func (s *Service) CollectUploads(ctx context.Context, playlistID string, cutoff time.Time, limit int) ([]models.UploadItem, error) {
	iterator := s.Uploads(ctx, playlistID, cutoff)

	items := make([]models.UploadItem, 0)
	for len(items) < limit {
		item, err := iterator.Next()
		if err == ErrEnd {
			break
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
