package escrow

import (
	"github.com/montanaflynn/stats"
	"github.com/sasha-s/go-deadlock"

	"bountyninja/bountyninja"
)

// FeeLedger accumulates the fees each mint has charged us, so funders can see
// which mints are eating their pledges.
type FeeLedger struct {
	mutex    *deadlock.Mutex
	observed map[string][]float64
}

func NewFeeLedger() *FeeLedger {
	return &FeeLedger{
		mutex:    &deadlock.Mutex{},
		observed: make(map[string][]float64),
	}
}

func (l *FeeLedger) Record(mintURL string, fee bountyninja.Sats) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	url := NormalizeMintURL(mintURL)
	l.observed[url] = append(l.observed[url], float64(fee))
}

type FeeSummary struct {
	Mint   string
	Swaps  int
	Total  bountyninja.Sats
	Mean   float64
	Median float64
}

func (l *FeeLedger) Summaries() (out []FeeSummary) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	for mint, fees := range l.observed {
		summary := FeeSummary{Mint: mint, Swaps: len(fees)}
		if total, err := stats.Sum(fees); err == nil {
			summary.Total = bountyninja.Sats(total)
		}
		if mean, err := stats.Mean(fees); err == nil {
			summary.Mean = mean
		}
		if median, err := stats.Median(fees); err == nil {
			summary.Median = median
		}
		out = append(out, summary)
	}
	return
}
