package services

import (
	"fmt"
	"sync"
	"time"

	"roamio/pkg/utils"
)

// ProviderLimits is the static per-provider budget configuration.
type ProviderLimits struct {
	DailyCap          int
	RequestsPerMinute int
	DegradeThreshold  float64
}

// ProviderUsageStats is the read-only snapshot exposed for observability.
type ProviderUsageStats struct {
	Provider          string  `json:"provider"`
	DailyCount        int     `json:"daily_count"`
	DailyCap          int     `json:"daily_cap"`
	RequestsPerMinute int     `json:"requests_per_minute"`
	CurrentRPM        int     `json:"current_rpm"`
	Degraded          bool    `json:"degraded"`
	UtilizationRatio  float64 `json:"utilization_ratio"`
}

type QuotaGuardInterface interface {
	CanCall(provider string) bool
	NotifyCall(provider string)
	ShouldDegrade(provider string) bool
	GetDegradedRadius(provider string, radius float64) float64
	GetUsageStats() map[string]ProviderUsageStats
}

const (
	rpmWindow          = 60 * time.Second
	degradedRadiusMin  = 1000.0
	degradedRadiusFrac = 0.6
)

type providerUsage struct {
	dailyCount int
	dayKey     string
	window     []time.Time
}

// QuotaGuard tracks per-provider call budgets: a daily cap with UTC-midnight
// rollover and a trailing 60-second window. All state is behind one mutex;
// usage is mutated only through NotifyCall.
type QuotaGuard struct {
	mu     sync.Mutex
	limits map[string]ProviderLimits
	usage  map[string]*providerUsage
	now    func() time.Time
}

func NewQuotaGuard(limits map[string]ProviderLimits, now func() time.Time) QuotaGuardInterface {
	if now == nil {
		now = time.Now
	}
	for name, l := range limits {
		if l.DailyCap <= 0 || l.RequestsPerMinute <= 0 {
			panic(fmt.Sprintf("quota guard: provider %q has invalid limits %+v", name, l))
		}
	}
	return &QuotaGuard{
		limits: limits,
		usage:  make(map[string]*providerUsage),
		now:    now,
	}
}

// limitsFor panics on unknown providers: the provider set is static
// configuration and a name outside it is a programming error.
func (q *QuotaGuard) limitsFor(provider string) ProviderLimits {
	l, ok := q.limits[provider]
	if !ok {
		panic(fmt.Sprintf("quota guard: unknown provider %q", provider))
	}
	return l
}

func (q *QuotaGuard) usageFor(provider string, now time.Time) *providerUsage {
	u, ok := q.usage[provider]
	if !ok {
		u = &providerUsage{dayKey: utils.UTCDayKey(now)}
		q.usage[provider] = u
	}
	// Read-side rollover: without it a provider that exhausted yesterday's
	// cap would stay blocked after midnight because CanCall gates NotifyCall.
	if u.dayKey != utils.UTCDayKey(now) {
		u.dayKey = utils.UTCDayKey(now)
		u.dailyCount = 0
	}
	return u
}

func (q *QuotaGuard) pruneWindow(u *providerUsage, now time.Time) {
	cutoff := now.Add(-rpmWindow)
	keep := u.window[:0]
	for _, ts := range u.window {
		if ts.After(cutoff) {
			keep = append(keep, ts)
		}
	}
	u.window = keep
}

func (q *QuotaGuard) CanCall(provider string) bool {
	l := q.limitsFor(provider)

	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	u := q.usageFor(provider, now)
	q.pruneWindow(u, now)

	return u.dailyCount < l.DailyCap && len(u.window) < l.RequestsPerMinute
}

func (q *QuotaGuard) NotifyCall(provider string) {
	q.limitsFor(provider)

	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	u := q.usageFor(provider, now)
	u.dailyCount++
	u.window = append(u.window, now)
	q.pruneWindow(u, now)
}

func (q *QuotaGuard) ShouldDegrade(provider string) bool {
	l := q.limitsFor(provider)

	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	u := q.usageFor(provider, now)
	q.pruneWindow(u, now)

	return utilization(u, l) >= l.DegradeThreshold
}

// GetDegradedRadius shrinks the search area when the provider is close to
// budget, floored at 1km so a degraded search stays useful.
func (q *QuotaGuard) GetDegradedRadius(provider string, radius float64) float64 {
	if !q.ShouldDegrade(provider) {
		return radius
	}
	shrunk := radius * degradedRadiusFrac
	if shrunk < degradedRadiusMin {
		return degradedRadiusMin
	}
	return shrunk
}

func (q *QuotaGuard) GetUsageStats() map[string]ProviderUsageStats {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	stats := make(map[string]ProviderUsageStats, len(q.limits))
	for name, l := range q.limits {
		u := q.usageFor(name, now)
		q.pruneWindow(u, now)
		ratio := utilization(u, l)
		stats[name] = ProviderUsageStats{
			Provider:          name,
			DailyCount:        u.dailyCount,
			DailyCap:          l.DailyCap,
			RequestsPerMinute: l.RequestsPerMinute,
			CurrentRPM:        len(u.window),
			Degraded:          ratio >= l.DegradeThreshold,
			UtilizationRatio:  ratio,
		}
	}
	return stats
}

func utilization(u *providerUsage, l ProviderLimits) float64 {
	daily := float64(u.dailyCount) / float64(l.DailyCap)
	rpm := float64(len(u.window)) / float64(l.RequestsPerMinute)
	if daily > rpm {
		return daily
	}
	return rpm
}
