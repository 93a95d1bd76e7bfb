package pageinsight

import (
	"context"
	"math"
	"time"

	"github.com/Bahjat/site-audit/internal/model"
)

// ScorePerformance summarizes the timed samples of one URL. last is the
// final sample's response; dns is the isolated host lookup time.
func ScorePerformance(times []time.Duration, last *FetchResult, dns time.Duration) model.Performance {
	perf := model.Performance{
		ResponseTimes: make([]float64, 0, len(times)),
		DNSLookupTime: dns.Seconds(),
	}
	if len(times) == 0 {
		return perf
	}

	var total float64
	perf.MinResponseTime = math.Inf(1)
	for _, d := range times {
		s := d.Seconds()
		perf.ResponseTimes = append(perf.ResponseTimes, s)
		total += s
		perf.MinResponseTime = math.Min(perf.MinResponseTime, s)
		perf.MaxResponseTime = math.Max(perf.MaxResponseTime, s)
	}
	perf.AvgResponseTime = total / float64(len(times))

	if last != nil {
		perf.ContentSize = len(last.Body)
		perf.Compression = last.Compressed
		perf.Caching = last.Header.Get("Cache-Control")
	}
	perf.PerformanceScore = PerformanceScore(perf.ContentSize, perf.AvgResponseTime)
	return perf
}

// PerformanceScore rates delivery on a 0-100 scale. Each MB of content costs
// 10 points and each second of average response time 20 points; the two
// halves floor at 0 and are averaged.
func PerformanceScore(contentBytes int, avgSeconds float64) float64 {
	sizeScore := math.Max(0, 100-(float64(contentBytes)/1_048_576)*10)
	timeScore := math.Max(0, 100-avgSeconds*20)
	return (sizeScore + timeScore) / 2
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
