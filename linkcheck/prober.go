// Package linkcheck probes externally linked URLs for liveness and groups
// them per video for the link-rot report.
package linkcheck

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/promoscan/promoscan/metrics"
	"github.com/promoscan/promoscan/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 5
	DefaultTimeout     = 8 * time.Second
	DefaultMaxProbes   = 100

	probeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	probeAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Prober checks URL reachability in fixed-size concurrent batches. The batch
// boundary is also the error-isolation boundary: one URL's failure never
// aborts sibling probes. Every probe carries an independent timeout that
// cancels the in-flight request.
type Prober struct {
	Client      *http.Client
	Concurrency int
	Timeout     time.Duration
	MaxProbes   int

	log *logrus.Entry
}

func NewProber(log *logrus.Entry) *Prober {
	return &Prober{
		Client:      &http.Client{},
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		MaxProbes:   DefaultMaxProbes,
		log:         log,
	}
}

// ProbeAll probes up to MaxProbes of $urls and returns one result per input
// URL in input order. Entries beyond the cap are marked unchecked rather
// than probed to bound wall-clock latency.
func (p *Prober) ProbeAll(ctx context.Context, urls []string) []models.LinkProbeResult {
	results := make([]models.LinkProbeResult, len(urls))

	limit := len(urls)
	if limit > p.MaxProbes {
		limit = p.MaxProbes
	}

	for start := 0; start < limit; start += p.Concurrency {
		end := start + p.Concurrency
		if end > limit {
			end = limit
		}

		group, groupCtx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			group.Go(func() error {
				results[i] = p.probe(groupCtx, urls[i])
				return nil
			})
		}
		group.Wait()
	}

	for i := limit; i < len(urls); i++ {
		results[i] = models.LinkProbeResult{URL: urls[i], Unchecked: true}
	}

	return results
}

func (p *Prober) probe(ctx context.Context, rawURL string) models.LinkProbeResult {
	result := models.LinkProbeResult{URL: rawURL}
	metrics.ProbesPerformed.Add(1)

	// HEAD is the lightweight existence check; servers that reject it as
	// unsupported get one heavier GET fallback with a fresh timeout.
	status, finalURL, err := p.attempt(ctx, http.MethodHead, rawURL)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, finalURL, err = p.attempt(ctx, http.MethodGet, rawURL)
	}

	if err != nil {
		working := false
		result.Working = &working
		result.Error = classifyProbeError(err)
		return result
	}

	working := status >= 200 && status < 400
	result.Working = &working
	result.Status = status
	if finalURL != "" && finalURL != rawURL {
		result.RedirectURL = finalURL
	}
	return result
}

func (p *Prober) attempt(parent context.Context, method, rawURL string) (status int, finalURL string, err error) {
	ctx, cancel := context.WithTimeout(parent, p.Timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, "", err
	}
	request.Header.Set("User-Agent", probeUserAgent)
	request.Header.Set("Accept", probeAccept)

	response, err := p.Client.Do(request)
	if err != nil {
		return 0, "", err
	}
	defer response.Body.Close()
	io.Copy(io.Discard, io.LimitReader(response.Body, 1<<14))

	return response.StatusCode, response.Request.URL.String(), nil
}

// classifyProbeError folds network failures into the small taxonomy callers
// branch on; anything unrecognized propagates as a truncated message.
func classifyProbeError(err error) string {
	var dnsErr *net.DNSError
	var certVerifyErr *tls.CertificateVerificationError
	var hostnameErr x509.HostnameError
	var authorityErr x509.UnknownAuthorityError
	var invalidErr x509.CertificateInvalidError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Timeout"
	case errors.As(err, &dnsErr):
		return "Domain not found"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "Connection refused"
	case errors.As(err, &certVerifyErr),
		errors.As(err, &hostnameErr),
		errors.As(err, &authorityErr),
		errors.As(err, &invalidErr):
		return "SSL certificate error"
	}

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return "Timeout"
	}

	message := err.Error()
	if len(message) > 100 {
		message = message[:100]
	}
	return message
}
