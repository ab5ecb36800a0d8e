package tradejournal

import "sync"

// summaryCache holds computed journal summaries until the next accepted
// mutation of the same journal. Every invalidation bumps the journal's
// generation; a summary computed under an older generation is discarded.
type summaryCache struct {
	mu          sync.RWMutex
	summaries   map[int64]JournalSummary
	generations map[int64]uint64
}

func newSummaryCache() *summaryCache {
	return &summaryCache{
		summaries:   make(map[int64]JournalSummary),
		generations: make(map[int64]uint64),
	}
}

// get returns the cached summary, or the current generation to pass to set
// once a fresh summary has been computed.
func (c *summaryCache) get(journalID int64) (JournalSummary, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.summaries[journalID]
	if !ok {
		return JournalSummary{}, c.generations[journalID], false
	}
	s.Trades = append([]Trade(nil), s.Trades...)
	return s, c.generations[journalID], true
}

// set stores s unless the journal was invalidated after generation gen was read.
func (c *summaryCache) set(s JournalSummary, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[s.JournalID] != gen {
		return false
	}
	s.Trades = append([]Trade(nil), s.Trades...)
	c.summaries[s.JournalID] = s
	return true
}

func (c *summaryCache) invalidate(journalID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[journalID]++
	delete(c.summaries, journalID)
}
