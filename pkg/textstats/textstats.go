// Package textstats counts, ranks, and scores tokens in small text
// corpora.
//
// The counting primitives ([CountTokens], [TopK], [MinCount]) work on
// flat token lists. The scoring functions use augmented term frequency
// and inverse document frequency over a collection of documents, where
// a document is simply a token slice; [Salient] combines the two into a
// tf-idf test. [Preprocess] turns raw text into tokens the way the
// analysis expects: punctuation-stripped, optionally lowercased, with
// stop words and noise prefixes removed. [NGrams] derives fixed-length
// windows from a token slice, each rendered as a space-joined string.
package textstats

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

var (
	// ErrInvalidK is returned by [TopK] when k is negative.
	ErrInvalidK = errors.New("k must be non-negative")

	// ErrInvalidMinCount is returned by [MinCount] when the threshold is
	// negative.
	ErrInvalidMinCount = errors.New("min count must be non-negative")

	// ErrInvalidN is returned by [NGrams] when the window length is not
	// positive.
	ErrInvalidN = errors.New("n-gram length must be positive")
)

// StopWords are dropped by [Preprocess] when stop-word removal is on.
// The match is exact, after any lowercasing.
var StopWords = []string{
	"a", "an", "the", "this", "that", "of", "for", "or",
	"and", "on", "to", "be", "if", "we", "you", "in", "is",
	"at", "it", "rt", "mt", "with",
}

// StopPrefixes mark tokens [Preprocess] always drops: mentions,
// hashtags, links, and escaped ampersands.
var StopPrefixes = []string{"@", "#", "http", "&amp"}

var stopWordSet = func() map[string]bool {
	set := make(map[string]bool, len(StopWords))
	for _, w := range StopWords {
		set[w] = true
	}
	return set
}()

// CountTokens counts each distinct token.
func CountTokens(tokens []string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}

// pair is a token with its count, ordered by count descending and token
// ascending for ties.
type pair struct {
	token string
	count int
}

func sortedPairs(counts map[string]int) []pair {
	pairs := make([]pair, 0, len(counts))
	for tok, count := range counts {
		pairs = append(pairs, pair{token: tok, count: count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].token < pairs[j].token
	})
	return pairs
}

// TopK returns the k most frequent tokens, most frequent first; ties
// break alphabetically. Returns ErrInvalidK when k is negative.
func TopK(tokens []string, k int) ([]string, error) {
	if k < 0 {
		return nil, ErrInvalidK
	}
	pairs := sortedPairs(CountTokens(tokens))
	if k > len(pairs) {
		k = len(pairs)
	}
	top := make([]string, k)
	for i := 0; i < k; i++ {
		top[i] = pairs[i].token
	}
	return top, nil
}

// MinCount returns the tokens occurring at least min times, in the same
// order as [TopK]. Returns ErrInvalidMinCount when min is negative.
func MinCount(tokens []string, min int) ([]string, error) {
	if min < 0 {
		return nil, ErrInvalidMinCount
	}
	var kept []string
	for _, p := range sortedPairs(CountTokens(tokens)) {
		if p.count >= min {
			kept = append(kept, p.token)
		}
	}
	return kept, nil
}

// AugmentedFreq computes the augmented term frequency of each token in
// the document: 0.5 + 0.5*(count/maxCount). The augmentation keeps long
// documents from drowning out short ones. An empty document yields an
// empty map.
func AugmentedFreq(doc []string) map[string]float64 {
	if len(doc) == 0 {
		return map[string]float64{}
	}
	counts := CountTokens(doc)
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	tf := make(map[string]float64, len(counts))
	for tok, c := range counts {
		tf[tok] = 0.5 + 0.5*(float64(c)/float64(maxCount))
	}
	return tf
}

// InverseDocFreq computes ln(numDocs/docsWithToken) for every token
// appearing in the collection.
func InverseDocFreq(docs [][]string) map[string]float64 {
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, tok := range doc {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}
	idf := make(map[string]float64, len(docFreq))
	for tok, df := range docFreq {
		idf[tok] = math.Log(float64(len(docs)) / float64(df))
	}
	return idf
}

// Salient returns, per document, the set of tokens whose tf-idf score is
// strictly above threshold. Tokens appearing in every document score
// zero and are never salient for a non-negative threshold.
func Salient(docs [][]string, threshold float64) []map[string]bool {
	idf := InverseDocFreq(docs)
	salient := make([]map[string]bool, len(docs))
	for i, doc := range docs {
		inDoc := make(map[string]bool)
		for tok, tf := range AugmentedFreq(doc) {
			if tf*idf[tok] > threshold {
				inDoc[tok] = true
			}
		}
		salient[i] = inDoc
	}
	return salient
}

// keepRune reports whether a rune survives edge trimming. Unicode
// punctuation is trimmed except the tweet-significant '#', '@', '&'.
func keepRune(r rune) bool {
	if r == '#' || r == '@' || r == '&' {
		return false
	}
	return unicode.IsPunct(r)
}

// Preprocess splits text on whitespace and normalizes each word: trims
// leading and trailing punctuation (keeping '#', '@', '&'), lowercases
// unless caseSensitive, drops stop words when removeStop is on, and
// always drops words starting with one of [StopPrefixes]. Empty results
// are omitted.
func Preprocess(text string, caseSensitive, removeStop bool) []string {
	var tokens []string
	for _, word := range strings.Fields(text) {
		word = strings.TrimFunc(word, keepRune)
		if !caseSensitive {
			word = strings.ToLower(word)
		}
		if removeStop && stopWordSet[word] {
			continue
		}
		if hasStopPrefix(word) {
			continue
		}
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func hasStopPrefix(word string) bool {
	for _, prefix := range StopPrefixes {
		if strings.HasPrefix(word, prefix) {
			return true
		}
	}
	return false
}

// NGrams returns every run of n consecutive tokens, each joined with a
// single space. A slice shorter than n yields no n-grams. Returns
// ErrInvalidN when n is not positive.
func NGrams(tokens []string, n int) ([]string, error) {
	if n < 1 {
		return nil, ErrInvalidN
	}
	if len(tokens) < n {
		return nil, nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams, nil
}
