package youtube

import (
	"sync"
	"time"

	"github.com/promoscan/promoscan/metrics"
	"github.com/promoscan/promoscan/mirror"
	"github.com/promoscan/promoscan/models"
	"github.com/sirupsen/logrus"
)

// Quota costs of the upstream call types. The two-orders-of-magnitude gap
// between a direct lookup and a full-text search governs which resolution
// paths the ledger can afford.
const (
	DailyQuotaLimit   int64 = 10000
	QuotaSafetyBuffer int64 = 500

	LookupQuotaCost int64 = 1
	PageQuotaCost   int64 = 1
	BatchQuotaCost  int64 = 1
	SearchQuotaCost int64 = 100

	lowQuotaThreshold int64 = 1000
	quotaMirrorTTL          = 24 * time.Hour
)

// Ledger tracks metered-call cost consumed for the current day against the
// fixed daily budget. One ledger exists per process; the durable mirror makes
// separate instances approximate a shared budget. The mirror is eventually
// consistent, so the effective limit is soft: two concurrent requests can
// both pass CheckBudget for the same headroom and then both Consume. The
// safety buffer is sized to absorb a handful of such overlaps.
type Ledger struct {
	mu    sync.Mutex
	day   string
	used  int64
	store mirror.Store
	log   *logrus.Entry
	now   func() time.Time
}

func NewLedger(store mirror.Store, log *logrus.Entry) *Ledger {
	return &Ledger{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// The day key is a UTC date string; ResetsAt reported to clients is local
// midnight. The discrepancy is deliberate and documented rather than
// resolved: the upstream resets on its own clock anyway.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func mirrorKey(day string) string {
	return models.QuotaMirrorKeyPrefix + ":" + day
}

// hydrate lazily loads today's usage from the durable mirror on the first
// use within a new calendar day. Callers must hold l.mu.
func (l *Ledger) hydrate() {
	today := dayKey(l.now())
	if l.day == today {
		return
	}
	l.day = today
	l.used = 0

	var state models.QuotaState
	err := l.store.Get(mirrorKey(today), &state)
	switch {
	case err == mirror.ErrNotFound:
		// fresh day, nothing mirrored yet
	case err != nil:
		l.log.WithError(err).Warn("quota mirror read failed, assuming 0 used")
	case state.Day == today:
		l.used = state.Used
	}
}

func (l *Ledger) statusLocked() models.QuotaStatus {
	remaining := DailyQuotaLimit - l.used
	usable := remaining - QuotaSafetyBuffer
	if usable < 0 {
		usable = 0
	}

	now := l.now()
	year, month, day := now.Date()
	resetsAt := time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())

	return models.QuotaStatus{
		Used:            l.used,
		Remaining:       remaining,
		UsableRemaining: usable,
		Limit:           DailyQuotaLimit,
		PercentUsed:     int(l.used * 100 / DailyQuotaLimit),
		IsLow:           usable < lowQuotaThreshold,
		IsExhausted:     usable <= 0,
		ResetsAt:        resetsAt.Format(time.RFC3339),
	}
}

// Status returns the current snapshot.
func (l *Ledger) Status() models.QuotaStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.hydrate()
	return l.statusLocked()
}

// CheckBudget reports whether $cost fits into the usable remaining budget.
// It does not reserve anything; see the Ledger doc for the soft-limit race.
func (l *Ledger) CheckBudget(cost int64) (bool, models.QuotaStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.hydrate()
	status := l.statusLocked()
	return status.UsableRemaining >= cost, status
}

// Consume deducts $cost from today's budget and returns the new total. On
// refusal the ledger is left unchanged and a *QuotaExceededError carrying
// the snapshot is returned. The durable mirror is updated by a best-effort
// background write; its failure is logged, never surfaced.
func (l *Ledger) Consume(cost int64) (int64, error) {
	l.mu.Lock()

	l.hydrate()
	if l.used+cost > DailyQuotaLimit-QuotaSafetyBuffer {
		status := l.statusLocked()
		l.mu.Unlock()
		return 0, &QuotaExceededError{Status: status}
	}

	l.used += cost
	day, used := l.day, l.used
	l.mu.Unlock()

	metrics.QuotaUnitsConsumed.Add(cost)
	go l.persist(day, used)

	return used, nil
}

// MarkExhausted zeroes the usable headroom after the upstream API itself
// rejected a call for quota, so subsequent requests fail fast locally.
func (l *Ledger) MarkExhausted() {
	l.mu.Lock()

	l.hydrate()
	l.used = DailyQuotaLimit
	day, used := l.day, l.used
	l.mu.Unlock()

	go l.persist(day, used)
}

func (l *Ledger) persist(day string, used int64) {
	state := models.QuotaState{Day: day, Used: used}
	if err := l.store.Set(mirrorKey(day), state, quotaMirrorTTL); err != nil {
		l.log.WithError(err).Error("quota mirror write failed")
	}
}
