package rest

import (
	"fmt"
	"time"

	"github.com/emicklei/go-restful"
	"github.com/getsentry/raven-go"
	"github.com/promoscan/promoscan/linkcheck"
	"github.com/promoscan/promoscan/metrics"
	"github.com/promoscan/promoscan/youtube"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// API wires the core ingestion layer to the HTTP boundary. All analysis
// endpoints are thin: validate input, consult the cache, drive the service,
// format the payload.
type API struct {
	svc    *youtube.Service
	cache  *youtube.ResponseCache
	prober *linkcheck.Prober
	log    *logrus.Entry
}

func New(svc *youtube.Service, cache *youtube.ResponseCache, prober *linkcheck.Prober, log *logrus.Entry) *API {
	return &API{svc: svc, cache: cache, prober: prober, log: log}
}

func (a *API) NewRestServices() []*restful.WebService {
	services := make([]*restful.WebService, 0)

	service := new(restful.WebService)
	service.
		Path("/api").
		Produces(restful.MIME_JSON)

	service.Filter(a.recoverFilter)
	service.Filter(a.accessLogFilter)

	service.Route(service.GET("/quota").To(a.GetQuota))
	service.Route(service.GET("/analyze").To(a.Analyze))
	service.Route(service.GET("/linkcheck").To(a.LinkCheck))
	services = append(services, service)

	return services
}

func (a *API) accessLogFilter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	entry := a.log
	if requestID, err := uuid.NewV4(); err == nil {
		resp.AddHeader("X-Request-ID", requestID.String())
		entry = entry.WithField("request", requestID.String())
	}

	start := time.Now()
	metrics.RequestsServed.Add(1)

	chain.ProcessFilter(req, resp)

	entry.WithFields(logrus.Fields{
		"path":   req.Request.URL.Path,
		"status": resp.StatusCode(),
		"took":   time.Since(start).String(),
	}).Info("handled request")
}

func (a *API) recoverFilter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			a.log.WithError(err).Error("panic while handling request")
			raven.CaptureError(err, map[string]string{"path": req.Request.URL.Path})
			writeError(resp, 500, "Unexpected server error.")
		}
	}()

	chain.ProcessFilter(req, resp)
}
