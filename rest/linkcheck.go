package rest

import (
	"net/http"
	"time"

	"github.com/emicklei/go-restful"
	"github.com/promoscan/promoscan/helpers"
	"github.com/promoscan/promoscan/linkcheck"
	"github.com/promoscan/promoscan/models"
	"github.com/promoscan/promoscan/youtube"
)

const (
	linkcheckDefaultMaxVideos = 500
	linkcheckMaxVideosCeiling = 1000
	linkcheckVideosPerLink    = 5
)

type CheckedLink struct {
	URL         string            `json:"url"`
	Domain      string            `json:"domain"`
	Status      int               `json:"status,omitempty"`
	Error       string            `json:"error,omitempty"`
	RedirectURL string            `json:"redirectUrl,omitempty"`
	Occurrences int               `json:"occurrences"`
	Videos      []models.VideoRef `json:"videos"`
	Unchecked   bool              `json:"unchecked,omitempty"`
}

type LinkSummary struct {
	Working int `json:"working"`
	Broken  int `json:"broken"`
	Total   int `json:"total"`
}

type LinkCheckResponse struct {
	FromCache    bool                `json:"fromCache,omitempty"`
	Channel      *models.ChannelInfo `json:"channel"`
	Filter       string              `json:"filter,omitempty"`
	SinceISO     string              `json:"sinceISO"`
	VideoCount   int                 `json:"videoCount"`
	TotalLinks   int                 `json:"totalLinks"`
	CheckedLinks int                 `json:"checkedLinks"`
	WorkingLinks []CheckedLink       `json:"workingLinks"`
	BrokenLinks  []CheckedLink       `json:"brokenLinks"`
	Summary      LinkSummary         `json:"summary"`
}

// LinkCheck scans recent upload descriptions for external URLs, probes their
// liveness, and reports working vs broken links per unique URL.
func (a *API) LinkCheck(req *restful.Request, resp *restful.Response) {
	input, err := helpers.ValidateChannelInput(req.QueryParameter("url"))
	if err != nil {
		writeError(resp, http.StatusBadRequest, err.Error())
		return
	}

	domainFilter := ""
	if raw := req.QueryParameter("filter"); raw != "" {
		domainFilter, err = helpers.ValidateDomainInput(raw)
		if err != nil {
			writeError(resp, http.StatusBadRequest, err.Error())
			return
		}
	}

	checkLinks := boolQueryParameter(req, "check", true)
	maxVideos := intQueryParameter(req, "maxVideos", linkcheckDefaultMaxVideos, linkcheckMaxVideosCeiling)
	months := intQueryParameter(req, "months", defaultMonthsBack, maxMonthsBack)
	since, err := helpers.WindowStart(months, req.QueryParameter("since"))
	if err != nil {
		writeError(resp, http.StatusBadRequest, err.Error())
		return
	}
	sinceISO := since.UTC().Format(time.RFC3339)

	// Probe results age quickly, so a cached report only short-circuits
	// requests that do not ask for a fresh check.
	cacheKey := youtube.CacheKey("linkcheck", input, domainFilter, sinceISO)
	if cached, ok := a.cache.Get(cacheKey); !checkLinks && ok {
		payload := cached.(LinkCheckResponse)
		payload.FromCache = true
		resp.WriteAsJson(payload)
		return
	}

	if allowed, status := a.svc.Ledger().CheckBudget(preflightQuotaCost); !allowed {
		writeQuotaExceeded(resp, "insufficient API quota for a link check", status)
		return
	}

	ctx := req.Request.Context()

	spec := youtube.ParseChannelReference(input)
	channelID, err := a.svc.ResolveChannelID(ctx, spec)
	if err != nil {
		a.writeServiceError(resp, err)
		return
	}

	channel, err := a.svc.ChannelInfo(ctx, channelID)
	if err != nil {
		a.writeServiceError(resp, err)
		return
	}

	playlistID, err := a.svc.UploadsPlaylistID(ctx, channelID)
	if err != nil {
		a.writeServiceError(resp, err)
		return
	}

	videos, err := a.svc.CollectUploads(ctx, playlistID, since, maxVideos)
	if err != nil {
		a.writeServiceError(resp, err)
		return
	}

	payload := LinkCheckResponse{
		Channel:      channel,
		Filter:       domainFilter,
		SinceISO:     sinceISO,
		VideoCount:   len(videos),
		WorkingLinks: []CheckedLink{},
		BrokenLinks:  []CheckedLink{},
	}
	if len(videos) == 0 {
		resp.WriteAsJson(payload)
		return
	}

	ids := make([]string, 0, len(videos))
	for _, video := range videos {
		ids = append(ids, video.VideoID)
	}
	details, err := a.svc.FetchVideoDetails(ctx, ids)
	if err != nil {
		a.writeServiceError(resp, err)
		return
	}

	groups := linkcheck.CollectLinks(details, domainFilter)
	payload.TotalLinks = len(groups)

	if checkLinks && len(groups) > 0 {
		urls := make([]string, 0, len(groups))
		for _, group := range groups {
			urls = append(urls, group.URL)
		}

		results := a.prober.ProbeAll(ctx, urls)
		for i, result := range results {
			link := newCheckedLink(groups[i], result)
			switch {
			case result.Unchecked:
				// beyond the probe cap: assumed working, marked unchecked
				payload.WorkingLinks = append(payload.WorkingLinks, link)
			case result.Working != nil && *result.Working:
				payload.WorkingLinks = append(payload.WorkingLinks, link)
				payload.CheckedLinks++
			default:
				payload.BrokenLinks = append(payload.BrokenLinks, link)
				payload.CheckedLinks++
			}
		}
	} else {
		for _, group := range groups {
			link := newCheckedLink(group, models.LinkProbeResult{Unchecked: true})
			payload.WorkingLinks = append(payload.WorkingLinks, link)
		}
	}

	payload.Summary = LinkSummary{
		Working: len(payload.WorkingLinks),
		Broken:  len(payload.BrokenLinks),
		Total:   len(groups),
	}

	a.cache.Set(cacheKey, payload)
	resp.WriteAsJson(payload)
}

func newCheckedLink(group linkcheck.LinkGroup, result models.LinkProbeResult) CheckedLink {
	videos := group.Videos
	if len(videos) > linkcheckVideosPerLink {
		videos = videos[:linkcheckVideosPerLink]
	}
	return CheckedLink{
		URL:         group.URL,
		Domain:      group.Domain,
		Status:      result.Status,
		Error:       result.Error,
		RedirectURL: result.RedirectURL,
		Occurrences: len(group.Videos),
		Videos:      videos,
		Unchecked:   result.Unchecked,
	}
}
