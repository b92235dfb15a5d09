package practicesession

import (
	"math"

	"github.com/mlo-prep/backend/internal/domain/category"
	"github.com/mlo-prep/backend/internal/domain/questionbank"
)

// Selector draws the ordered question set for a session.
type Selector struct {
	shuffler *Shuffler
}

func NewSelector(s *Shuffler) *Selector {
	if s == nil {
		s = DefaultShuffler()
	}
	return &Selector{shuffler: s}
}

// Shuffler exposes the selector's randomness source.
func (sel *Selector) Shuffler() *Shuffler {
	return sel.shuffler
}

// Pick returns up to cfg.N questions from pool with unique ids. It never
// fails: an exhausted pool just yields fewer questions.
func (sel *Selector) Pick(cfg SessionConfig, pool []questionbank.Question) []questionbank.Question {
	if cfg.N <= 0 || len(pool) == 0 {
		return []questionbank.Question{}
	}
	if !cfg.Weighted() || cfg.Weights.Total() <= 0 {
		return sel.pickUnweighted(cfg.N, pool)
	}

	buckets := questionbank.Partition(pool, cfg.Weights.Names())
	anyBucketHas := false
	for _, b := range buckets {
		if len(b) > 0 {
			anyBucketHas = true
			break
		}
	}
	if !anyBucketHas {
		return sel.pickUnweighted(cfg.N, pool)
	}

	quotas := quotaList(cfg.Weights, cfg.N)

	var picked []questionbank.Question
	for i, c := range cfg.Weights {
		bucket := shuffled(sel.shuffler, buckets[c.Name])
		want := min(max(quotas[i], 0), len(bucket))
		picked = append(picked, bucket[:want]...)
	}

	// Top up shortfalls from the whole pool, not just the weighted buckets.
	all := shuffled(sel.shuffler, pool)
	seen := make(map[string]struct{}, cfg.N)
	out := make([]questionbank.Question, 0, cfg.N)
	for _, q := range picked {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}
	for _, q := range all {
		if len(out) >= cfg.N {
			break
		}
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}

	if len(out) > cfg.N {
		out = out[:cfg.N]
	}
	Shuffle(sel.shuffler, out)
	return out
}

func (sel *Selector) pickUnweighted(n int, pool []questionbank.Question) []questionbank.Question {
	out := shuffled(sel.shuffler, pool)
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Quotas computes how many questions each category contributes to a draw of
// n. The result always sums to exactly n (for non-empty weights).
func Quotas(weights category.Weights, n int) map[string]int {
	list := quotaList(weights, n)
	out := make(map[string]int, len(list))
	for i, c := range weights {
		out[c.Name] = list[i]
	}
	return out
}

// quotaList returns quotas aligned with weights. Rounding drift is
// reconciled one unit at a time: surplus comes off the largest quota,
// deficit goes to the smallest, ties resolved by weight order. Non-positive
// weights count as zero, so no quota is ever negative.
func quotaList(weights category.Weights, n int) []int {
	quotas := make([]int, len(weights))
	total := 0
	for _, c := range weights {
		total += max(c.Weight, 0)
	}
	if total <= 0 {
		return quotas
	}
	n = max(n, 0)

	sum := 0
	for i, c := range weights {
		quotas[i] = int(math.Round(float64(max(c.Weight, 0)) / float64(total) * float64(n)))
		sum += quotas[i]
	}

	for sum > n {
		quotas[indexOfLargest(quotas)]--
		sum--
	}
	for sum < n {
		quotas[indexOfSmallest(quotas)]++
		sum++
	}
	return quotas
}

func indexOfLargest(xs []int) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}

func indexOfSmallest(xs []int) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[best] {
			best = i
		}
	}
	return best
}
