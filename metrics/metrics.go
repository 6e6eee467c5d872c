package metrics

import (
	"expvar"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// RequestsServed increases after each API request
	RequestsServed = expvar.NewInt("requests_served")

	// CacheHits counts response-cache hits
	CacheHits = expvar.NewInt("cache_hits")

	// CacheMisses counts response-cache misses
	CacheMisses = expvar.NewInt("cache_misses")

	// QuotaUnitsConsumed counts upstream quota units spent since boot
	QuotaUnitsConsumed = expvar.NewInt("quota_units_consumed")

	// UploadPagesFetched counts playlist pages fetched
	UploadPagesFetched = expvar.NewInt("upload_pages_fetched")

	// ProbesPerformed counts URL liveness probes
	ProbesPerformed = expvar.NewInt("probes_performed")

	// Uptime stores the timestamp of the service's boot
	Uptime = expvar.NewInt("uptime")
)

// Init starts the expvar http server on $listenAddress
func Init(log *logrus.Entry, listenAddress string) {
	log.WithField("address", listenAddress).Info("metrics listening")
	Uptime.Set(time.Now().Unix())
	go http.ListenAndServe(listenAddress, nil)
}
