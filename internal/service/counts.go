package service

import (
	"sort"

	"logscope/internal/model"
)

// Rate is the count and share of one distinct value.
// Valid is false for the bucket of records where the value is absent.
type Rate[K comparable] struct {
	Value   K
	Valid   bool
	Total   int
	Percent float64
}

// Ptr returns the value, or nil for the absent bucket
func (r Rate[K]) Ptr() *K {
	if !r.Valid {
		return nil
	}
	v := r.Value
	return &v
}

type bucket[K comparable] struct {
	value K
	valid bool
}

// Counts is a frequency map that remembers the order in which values were first seen
type Counts[K comparable] struct {
	order  []bucket[K]
	counts map[bucket[K]]int
	total  int
}

// CountBy groups records by the projected value and counts each group.
// A projection returning false puts the record in the absent bucket.
func CountBy[K comparable](records []*model.LogRecord, project func(*model.LogRecord) (K, bool)) *Counts[K] {
	c := &Counts[K]{counts: make(map[bucket[K]]int)}
	for _, r := range records {
		v, ok := project(r)
		b := bucket[K]{valid: ok}
		if ok {
			b.value = v
		}
		if _, seen := c.counts[b]; !seen {
			c.order = append(c.order, b)
		}
		c.counts[b]++
		c.total++
	}
	return c
}

// Total returns the number of counted records
func (c *Counts[K]) Total() int {
	return c.total
}

// Distinct returns the number of distinct values, the absent bucket included
func (c *Counts[K]) Distinct() int {
	return len(c.order)
}

// Rates returns every distinct value in first-seen order
func (c *Counts[K]) Rates() []Rate[K] {
	rates := make([]Rate[K], 0, len(c.order))
	for _, b := range c.order {
		count := c.counts[b]
		rates = append(rates, Rate[K]{
			Value:   b.value,
			Valid:   b.valid,
			Total:   count,
			Percent: percent(count, c.total),
		})
	}
	return rates
}

// Top returns the n most frequent values. Ties keep first-seen order.
func (c *Counts[K]) Top(n int) []Rate[K] {
	if n <= 0 {
		return []Rate[K]{}
	}
	rates := c.Rates()
	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Total > rates[j].Total
	})
	if len(rates) > n {
		rates = rates[:n]
	}
	return rates
}

// percent returns count as a percentage of total, 0 when total is 0
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
