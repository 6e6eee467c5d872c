package youtube

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/promoscan/promoscan/mirror"
	"github.com/promoscan/promoscan/models"
	"github.com/sirupsen/logrus"
	youtubeAPI "google.golang.org/api/youtube/v3"
)

func testLog() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return log.WithField("module", "test")
}

// fakeStore is an in-memory durable mirror.
type fakeStore struct {
	mu      sync.Mutex
	entries map[string]models.QuotaState
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]models.QuotaState)}
}

func (s *fakeStore) Get(key string, dst interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.entries[key]
	if !ok {
		return mirror.ErrNotFound
	}
	*dst.(*models.QuotaState) = state
	return nil
}

func (s *fakeStore) Set(key string, value interface{}, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value.(models.QuotaState)
	return nil
}

func (s *fakeStore) get(key string) (models.QuotaState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.entries[key]
	return state, ok
}

func newTestLedger() (*Ledger, *fakeStore) {
	store := newFakeStore()
	return NewLedger(store, testLog()), store
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

type fakePage struct {
	items []*youtubeAPI.PlaylistItem
	next  string
}

// fakeUpstream scripts upstream responses and counts calls.
type fakeUpstream struct {
	usernameID string
	searchID   string
	uploadsID  string
	info       *models.ChannelInfo
	pages      []fakePage
	videos     map[string]*youtubeAPI.Video

	usernameCalls int
	searchCalls   int
	pageCalls     int
	videoCalls    int
}

func (f *fakeUpstream) channelByUsername(ctx context.Context, username string) (string, error) {
	f.usernameCalls++
	return f.usernameID, nil
}

func (f *fakeUpstream) searchChannel(ctx context.Context, query string) (string, error) {
	f.searchCalls++
	return f.searchID, nil
}

func (f *fakeUpstream) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	return f.uploadsID, nil
}

func (f *fakeUpstream) channelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error) {
	return f.info, nil
}

func (f *fakeUpstream) playlistPage(ctx context.Context, playlistID, pageToken string) ([]*youtubeAPI.PlaylistItem, string, error) {
	index := 0
	for i, page := range f.pages {
		if page.next == pageToken {
			index = i + 1
			break
		}
	}
	if pageToken == "" {
		index = 0
	}
	f.pageCalls++
	page := f.pages[index]
	return page.items, page.next, nil
}

func (f *fakeUpstream) videosByID(ctx context.Context, ids []string) ([]*youtubeAPI.Video, error) {
	f.videoCalls++
	result := make([]*youtubeAPI.Video, 0, len(ids))
	for _, id := range ids {
		if video, ok := f.videos[id]; ok {
			result = append(result, video)
		}
	}
	return result, nil
}

func newTestService(api upstream) (*Service, *Ledger) {
	ledger, _ := newTestLedger()
	return &Service{api: api, ledger: ledger, log: testLog()}, ledger
}

func playlistItem(videoID, title string, publishedAt time.Time) *youtubeAPI.PlaylistItem {
	return &youtubeAPI.PlaylistItem{
		ContentDetails: &youtubeAPI.PlaylistItemContentDetails{
			VideoId:          videoID,
			VideoPublishedAt: publishedAt.Format(time.RFC3339),
		},
		Snippet: &youtubeAPI.PlaylistItemSnippet{Title: title},
	}
}
