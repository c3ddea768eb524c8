package utils

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// TF-IDF Vectorization
// =============================================================================

// englishStopWords are excluded from the vocabulary before weighting
var englishStopWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "all": {},
	"also": {}, "am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {},
	"at": {}, "be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "but": {}, "by": {}, "can": {},
	"could": {}, "did": {}, "do": {}, "does": {}, "doing": {}, "down": {},
	"during": {}, "each": {}, "few": {}, "for": {}, "from": {}, "further": {},
	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "her": {},
	"here": {}, "hers": {}, "him": {}, "his": {}, "how": {}, "if": {},
	"in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "itself": {},
	"just": {}, "me": {}, "more": {}, "most": {}, "my": {}, "no": {},
	"nor": {}, "not": {}, "now": {}, "of": {}, "off": {}, "on": {},
	"once": {}, "only": {}, "or": {}, "other": {}, "our": {}, "ours": {},
	"out": {}, "over": {}, "own": {}, "same": {}, "she": {}, "should": {},
	"so": {}, "some": {}, "such": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "theirs": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"to": {}, "too": {}, "under": {}, "until": {}, "up": {}, "very": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "whom": {}, "why": {}, "will": {},
	"with": {}, "you": {}, "your": {}, "yours": {}, "yourself": {},
}

// Tokenize lowercases text and splits it into alphanumeric tokens of at
// least two characters, excluding English stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := englishStopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// TFIDFVectorizer converts a corpus of documents into TF-IDF weighted
// vectors over a capped vocabulary. Rows are l2-normalized so that cosine
// similarity between documents reduces to a dot product of their vectors.
type TFIDFVectorizer struct {
	MaxFeatures int

	vocabulary []string
	vocabIndex map[string]int
	idf        []float64
}

// NewTFIDFVectorizer creates a vectorizer with the given vocabulary cap.
// A cap of 0 or less means no cap.
func NewTFIDFVectorizer(maxFeatures int) *TFIDFVectorizer {
	return &TFIDFVectorizer{MaxFeatures: maxFeatures}
}

// Vocabulary returns the fitted vocabulary in index order
func (v *TFIDFVectorizer) Vocabulary() []string {
	return v.vocabulary
}

// FitTransform builds the vocabulary from the corpus and returns one TF-IDF
// vector per document. An empty corpus yields an empty matrix; a document
// with no vocabulary terms yields a zero vector.
func (v *TFIDFVectorizer) FitTransform(docs []string) [][]float64 {
	tokenized := make([][]string, len(docs))
	termTotals := make(map[string]int)
	docFreq := make(map[string]int)

	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{})
		for _, tok := range tokens {
			termTotals[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	v.buildVocabulary(termTotals)

	// Smoothed inverse document frequency: ln((1+n)/(1+df)) + 1
	n := float64(len(docs))
	v.idf = make([]float64, len(v.vocabulary))
	for i, term := range v.vocabulary {
		df := float64(docFreq[term])
		v.idf[i] = math.Log((1+n)/(1+df)) + 1
	}

	matrix := make([][]float64, len(docs))
	for i, tokens := range tokenized {
		matrix[i] = v.transformTokens(tokens)
	}
	return matrix
}

// buildVocabulary keeps the most frequent MaxFeatures terms, breaking ties
// alphabetically, and assigns indexes in alphabetical order.
func (v *TFIDFVectorizer) buildVocabulary(termTotals map[string]int) {
	terms := make([]string, 0, len(termTotals))
	for term := range termTotals {
		terms = append(terms, term)
	}

	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termTotals[terms[i]] != termTotals[terms[j]] {
				return termTotals[terms[i]] > termTotals[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxFeatures]
	}

	sort.Strings(terms)
	v.vocabulary = terms
	v.vocabIndex = make(map[string]int, len(terms))
	for i, term := range terms {
		v.vocabIndex[term] = i
	}
}

func (v *TFIDFVectorizer) transformTokens(tokens []string) []float64 {
	vec := make([]float64, len(v.vocabulary))
	for _, tok := range tokens {
		if idx, ok := v.vocabIndex[tok]; ok {
			vec[idx] += 1
		}
	}

	for i := range vec {
		vec[i] *= v.idf[i]
	}

	// l2 normalization
	norm := Norm(vec)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
