package rest

import (
	"net/http"
	"time"

	"github.com/emicklei/go-restful"
	"github.com/promoscan/promoscan/analysis"
	"github.com/promoscan/promoscan/helpers"
	"github.com/promoscan/promoscan/models"
	"github.com/promoscan/promoscan/youtube"
)

// analyzeItemCap bounds one collection pass independently of the cutoff, so
// a very high-frequency channel cannot exhaust the day's quota on a single
// request.
const analyzeItemCap = 1200

type AnalyzeResponse struct {
	FromCache  bool                 `json:"fromCache,omitempty"`
	ChannelID  string               `json:"channelId"`
	SinceISO   string               `json:"sinceISO"`
	VideoCount int                  `json:"videoCount"`
	Promotions []analysis.Promotion `json:"promotions"`
}

// Analyze runs the full pipeline for the promotion report: resolve the
// channel reference, collect recent uploads, hydrate descriptions, and
// group the promotion links found in them.
func (a *API) Analyze(req *restful.Request, resp *restful.Response) {
	input, err := helpers.ValidateChannelInput(req.QueryParameter("url"))
	if err != nil {
		writeError(resp, http.StatusBadRequest, err.Error())
		return
	}

	months := intQueryParameter(req, "months", defaultMonthsBack, maxMonthsBack)
	since, err := helpers.WindowStart(months, req.QueryParameter("since"))
	if err != nil {
		writeError(resp, http.StatusBadRequest, err.Error())
		return
	}
	sinceISO := since.UTC().Format(time.RFC3339)

	cacheKey := youtube.CacheKey("analyze", input, sinceISO)
	if cached, ok := a.cache.Get(cacheKey); ok {
		payload := cached.(AnalyzeResponse)
		payload.FromCache = true
		resp.WriteAsJson(payload)
		return
	}

	if allowed, status := a.svc.Ledger().CheckBudget(preflightQuotaCost); !allowed {
		writeQuotaExceeded(resp, "insufficient API quota for an analysis pass", status)
		return
	}

	ctx := req.Request.Context()

	spec := youtube.ParseChannelReference(input)
	channelID, err := a.svc.ResolveChannelID(ctx, spec)
	if err != nil {
		a.writeServiceError(resp, err)
		return
	}

	playlistID, err := a.svc.UploadsPlaylistID(ctx, channelID)
	if err != nil {
		a.writeServiceError(resp, err)
		return
	}

	recent, err := a.svc.CollectUploads(ctx, playlistID, since, analyzeItemCap)
	if err != nil {
		a.writeServiceError(resp, err)
		return
	}

	payload := AnalyzeResponse{
		ChannelID:  channelID,
		SinceISO:   sinceISO,
		Promotions: []analysis.Promotion{},
	}
	if len(recent) == 0 {
		a.cache.Set(cacheKey, payload)
		resp.WriteAsJson(payload)
		return
	}

	ids := make([]string, 0, len(recent))
	for _, item := range recent {
		ids = append(ids, item.VideoID)
	}
	details, err := a.svc.FetchVideoDetails(ctx, ids)
	if err != nil {
		a.writeServiceError(resp, err)
		return
	}

	merged := mergeDetails(recent, details)
	payload.VideoCount = len(merged)
	payload.Promotions = analysis.DetectPromotions(merged)

	a.cache.Set(cacheKey, payload)
	resp.WriteAsJson(payload)
}

// mergeDetails joins the collector's minimal items with the hydrated
// details, falling back to the collector's title/timestamp for videos the
// details call no longer returned.
func mergeDetails(items []models.UploadItem, details []models.VideoDetail) []models.VideoDetail {
	byID := make(map[string]models.VideoDetail, len(details))
	for _, detail := range details {
		byID[detail.VideoID] = detail
	}

	merged := make([]models.VideoDetail, 0, len(items))
	for _, item := range items {
		if detail, ok := byID[item.VideoID]; ok {
			if detail.PublishedAt.IsZero() {
				detail.PublishedAt = item.PublishedAt
			}
			merged = append(merged, detail)
			continue
		}
		merged = append(merged, models.VideoDetail{
			VideoID:     item.VideoID,
			Title:       item.Title,
			PublishedAt: item.PublishedAt,
		})
	}
	return merged
}
