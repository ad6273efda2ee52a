// Package lexical provides a BM25 posting-list index over the chunk corpus.
//
// Rare terms discriminate; corpus-wide common terms are downweighted.
// The index is built once per snapshot and never mutated afterwards, so
// concurrent reads need no locking.
package lexical

import (
	"math"
	"strings"
	"unicode"
)

// Okapi BM25 parameters.
const (
	k1 = 1.2
	b  = 0.75
)

// posting records one term occurrence: which chunk and how often.
type posting struct {
	ord int
	tf  int
}

// Index is an immutable BM25 index. Chunks are addressed by their
// ordinal (insertion order) within the snapshot.
type Index struct {
	postings map[string][]posting
	docLens  []int
	avgLen   float64
	n        int
}

// Build constructs the index from chunk texts in insertion order.
// Cost is linear in the total number of tokens.
func Build(texts []string) *Index {
	ix := &Index{
		postings: make(map[string][]posting),
		docLens:  make([]int, len(texts)),
		n:        len(texts),
	}

	total := 0
	for ord, text := range texts {
		terms := Tokenize(text)
		ix.docLens[ord] = len(terms)
		total += len(terms)

		tf := make(map[string]int, len(terms))
		for _, term := range terms {
			tf[term]++
		}
		for term, count := range tf {
			ix.postings[term] = append(ix.postings[term], posting{ord: ord, tf: count})
		}
	}

	if ix.n > 0 {
		ix.avgLen = float64(total) / float64(ix.n)
	}
	return ix
}

// Tokenize lowercases and splits on whitespace, trimming punctuation
// from token edges. Used for both corpus and query text so the two
// always agree.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// Scores computes BM25 scores for the given query terms.
// Only chunks containing at least one query term appear in the result;
// cost is O(query terms x average postings length).
func (ix *Index) Scores(terms []string) map[int]float64 {
	scores := make(map[int]float64)
	if ix.n == 0 || ix.avgLen == 0 {
		return scores
	}

	for _, term := range terms {
		plist, ok := ix.postings[term]
		if !ok {
			continue
		}

		df := float64(len(plist))
		idf := math.Log(1 + (float64(ix.n)-df+0.5)/(df+0.5))

		for _, p := range plist {
			tf := float64(p.tf)
			norm := 1 - b + b*float64(ix.docLens[p.ord])/ix.avgLen
			scores[p.ord] += idf * tf * (k1 + 1) / (tf + k1*norm)
		}
	}
	return scores
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return ix.n
}

// Terms returns the vocabulary size. Used by the status surface.
func (ix *Index) Terms() int {
	return len(ix.postings)
}
