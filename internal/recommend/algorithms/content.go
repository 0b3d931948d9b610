// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tomtom215/shelfwise/internal/catalog"
)

// ContentConfig contains configuration for the content similarity index.
type ContentConfig struct {
	// MinTokenLength is the minimum token length in runes.
	MinTokenLength int

	// SublinearTF replaces raw term frequency with 1 + ln(tf).
	SublinearTF bool

	// StopWords are dropped during tokenization. Nil uses the built-in
	// English list; an empty non-nil slice disables stop-word removal.
	StopWords []string
}

// DefaultContentConfig returns default content index configuration.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		MinTokenLength: 2,
	}
}

// termWeight is one non-zero entry of an item's TF-IDF vector.
type termWeight struct {
	term   int
	weight float64
}

// posting is one entry of a term's inverted list.
type posting struct {
	item   int
	weight float64
}

// ContentIndex implements item-to-item content similarity over the
// catalog text profiles.
//
// Each text profile becomes an L2-normalized TF-IDF vector with smoothed
// inverse document frequency:
//
//	idf(t) = ln((1 + N) / (1 + df(t))) + 1
//
// Cosine similarity between two unit vectors is their dot product, which
// the inverted index evaluates touching only items that share a term
// with the anchor. The index is immutable after BuildContentIndex.
type ContentIndex struct {
	cat      *catalog.Catalog
	folded   []string
	vectors  [][]termWeight
	postings [][]posting
	vocab    map[string]int
}

// BuildContentIndex tokenizes every text profile, fixes the vocabulary
// and computes the item vectors. Cancellation of ctx aborts the build.
func BuildContentIndex(ctx context.Context, cat *catalog.Catalog, cfg ContentConfig) (*ContentIndex, error) {
	if cfg.MinTokenLength <= 0 {
		cfg.MinTokenLength = DefaultContentConfig().MinTokenLength
	}
	stop := englishStopWords
	if cfg.StopWords != nil {
		stop = make(map[string]struct{}, len(cfg.StopWords))
		for _, w := range cfg.StopWords {
			stop[strings.ToLower(w)] = struct{}{}
		}
	}

	n := cat.Len()
	idx := &ContentIndex{
		cat:     cat,
		folded:  make([]string, n),
		vectors: make([][]termWeight, n),
		vocab:   make(map[string]int),
	}

	// Term counts per item, keyed by vocabulary id.
	counts := make([]map[int]int, n)
	var df []int

	for i := 0; i < n; i++ {
		if i%1024 == 0 && ContextCancelled(ctx) {
			return nil, fmt.Errorf("content index build canceled: %w", ctx.Err())
		}

		item := cat.Item(i)
		idx.folded[i] = catalog.Fold(item.Name)

		tc := make(map[int]int)
		for _, tok := range tokenize(item.TextProfile, cfg.MinTokenLength, stop) {
			id, ok := idx.vocab[tok]
			if !ok {
				id = len(df)
				idx.vocab[tok] = id
				df = append(df, 0)
			}
			if tc[id] == 0 {
				df[id]++
			}
			tc[id]++
		}
		counts[i] = tc
	}

	idf := make([]float64, len(df))
	for t, d := range df {
		idf[t] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	idx.postings = make([][]posting, len(df))
	for i, tc := range counts {
		if len(tc) == 0 {
			continue
		}

		vec := make([]termWeight, 0, len(tc))
		var norm float64
		for t, c := range tc {
			tf := float64(c)
			if cfg.SublinearTF {
				tf = 1 + math.Log(tf)
			}
			w := tf * idf[t]
			norm += w * w
			vec = append(vec, termWeight{term: t, weight: w})
		}
		sort.Slice(vec, func(a, b int) bool { return vec[a].term < vec[b].term })

		norm = math.Sqrt(norm)
		for k := range vec {
			vec[k].weight /= norm
			idx.postings[vec[k].term] = append(idx.postings[vec[k].term], posting{item: i, weight: vec[k].weight})
		}
		idx.vectors[i] = vec
	}

	return idx, nil
}

// VocabularySize returns the number of distinct terms.
func (x *ContentIndex) VocabularySize() int {
	return len(x.vocab)
}

// Resolve finds the anchor item for a query: the first item in catalog
// order whose name contains the query, ignoring case. An empty query
// matches nothing.
func (x *ContentIndex) Resolve(query string) (catalog.Item, bool) {
	i, ok := x.resolveIndex(query)
	if !ok {
		return catalog.Item{}, false
	}
	return x.cat.Item(i), true
}

func (x *ContentIndex) resolveIndex(query string) (int, bool) {
	q := catalog.Fold(strings.TrimSpace(query))
	if q == "" {
		return 0, false
	}
	for i, name := range x.folded {
		if strings.Contains(name, q) {
			return i, true
		}
	}
	return 0, false
}

// Similar returns up to n items most similar to the item resolved from
// query, excluding that item. Items with no shared terms fill any
// remaining slots in catalog order. No match yields an empty slice.
func (x *ContentIndex) Similar(query string, n int) []catalog.Item {
	if n <= 0 {
		return []catalog.Item{}
	}
	anchor, ok := x.resolveIndex(query)
	if !ok {
		return []catalog.Item{}
	}
	return x.similarTo(anchor, n)
}

// similarTo ranks every item other than the anchor by cosine similarity.
// Zero scores tie and fall back to catalog order.
func (x *ContentIndex) similarTo(anchor, n int) []catalog.Item {
	scores := make([]float64, x.cat.Len())
	for _, tw := range x.vectors[anchor] {
		for _, p := range x.postings[tw.term] {
			if p.item == anchor {
				continue
			}
			scores[p.item] += tw.weight * p.weight
		}
	}

	ranked := make([]scored, 0, len(scores))
	for i, s := range scores {
		if i == anchor {
			continue
		}
		ranked = append(ranked, scored{index: i, score: s})
	}
	rankScored(ranked)

	return takeItems(x.cat, ranked, n)
}

// SimilarMulti answers a comma-separated list of queries. Each query is
// resolved on its own, the per-query results are concatenated in query
// order, deduplicated by name and capped at 2n.
func (x *ContentIndex) SimilarMulti(queryText string, n int) []catalog.Item {
	if n <= 0 {
		return []catalog.Item{}
	}

	var all []catalog.Item
	for _, q := range SplitQueries(queryText) {
		all = append(all, x.Similar(q, n)...)
	}

	out := catalog.DedupeByName(all)
	if out == nil {
		return []catalog.Item{}
	}
	if len(out) > 2*n {
		out = out[:2*n]
	}
	return out
}

// SplitQueries splits comma-separated query text, trimming each part and
// dropping empty ones.
func SplitQueries(queryText string) []string {
	parts := strings.Split(queryText, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// tokenize splits text into runs of letters and digits, keeping tokens
// of at least minLen runes that are not stop words.
func tokenize(text string, minLen int, stop map[string]struct{}) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minLen {
			continue
		}
		if _, ok := stop[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// englishStopWords is a compact list of high-frequency English words.
var englishStopWords = func() map[string]struct{} {
	words := []string{
		"about", "above", "after", "again", "against", "all", "am", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "before", "being",
		"below", "between", "both", "but", "by", "can", "could", "did", "do",
		"does", "doing", "down", "during", "each", "few", "for", "from",
		"further", "had", "has", "have", "having", "he", "her", "here", "hers",
		"herself", "him", "himself", "his", "how", "if", "in", "into", "is",
		"it", "its", "itself", "just", "me", "more", "most", "my", "myself",
		"no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
		"other", "our", "ours", "ourselves", "out", "over", "own", "same",
		"she", "should", "so", "some", "such", "than", "that", "the", "their",
		"theirs", "them", "themselves", "then", "there", "these", "they",
		"this", "those", "through", "to", "too", "under", "until", "up", "very",
		"was", "we", "were", "what", "when", "where", "which", "while", "who",
		"whom", "why", "will", "with", "would", "you", "your", "yours",
		"yourself", "yourselves",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
