// Copyright 2025 savora Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tfidf implements a term-frequency inverse-document-frequency
// vector space with smoothed IDF and l2-normalized vectors, so the cosine
// similarity of two documents is the dot product of their vectors.
package tfidf

import (
	"regexp"
	"sort"
	"strings"

	"github.com/chewxy/math32"
	mapset "github.com/deckarep/golang-set/v2"
)

// tokenPattern matches unicode word tokens of two or more characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vector is a sparse l2-normalized document vector. Indices are strictly
// increasing.
type Vector struct {
	Indices []int32
	Values  []float32
}

// Dot computes the dot product of two sparse vectors. Since vectors are
// l2-normalized, this is their cosine similarity.
func (v Vector) Dot(other Vector) float32 {
	var sum float32
	i, j := 0, 0
	for i < len(v.Indices) && j < len(other.Indices) {
		switch {
		case v.Indices[i] == other.Indices[j]:
			sum += v.Values[i] * other.Values[j]
			i++
			j++
		case v.Indices[i] < other.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Vectorizer converts documents to TF-IDF vectors. Fit learns the vocabulary
// and document frequencies; Transform projects new text into the learned
// space, ignoring terms unseen during fit.
type Vectorizer struct {
	vocabulary map[string]int32
	idf        []float32
	stopWords  mapset.Set[string]
}

// NewVectorizer creates a vectorizer with the English stop-word list.
func NewVectorizer() *Vectorizer {
	stopWords := mapset.NewThreadUnsafeSet[string]()
	for _, word := range englishStopWords {
		stopWords.Add(word)
	}
	return &Vectorizer{
		vocabulary: make(map[string]int32),
		stopWords:  stopWords,
	}
}

// Fit learns the vocabulary and IDF weights from the corpus and returns the
// TF-IDF vector of every document.
func (v *Vectorizer) Fit(documents []string) []Vector {
	// learn vocabulary and document frequencies
	tokenized := make([][]string, len(documents))
	documentFrequency := make(map[string]int)
	for i, document := range documents {
		tokenized[i] = v.tokenize(document)
		seen := mapset.NewThreadUnsafeSet[string]()
		for _, token := range tokenized[i] {
			if _, exist := v.vocabulary[token]; !exist {
				v.vocabulary[token] = int32(len(v.vocabulary))
			}
			if seen.Add(token) {
				documentFrequency[token]++
			}
		}
	}
	// smoothed IDF: idf(t) = ln((1+n)/(1+df(t))) + 1
	v.idf = make([]float32, len(v.vocabulary))
	for token, index := range v.vocabulary {
		v.idf[index] = math32.Log(float32(1+len(documents))/float32(1+documentFrequency[token])) + 1
	}
	// vectorize the corpus
	vectors := make([]Vector, len(documents))
	for i, tokens := range tokenized {
		vectors[i] = v.vectorize(tokens)
	}
	return vectors
}

// Transform projects text into the fitted vector space. Terms unseen during
// fit are ignored, so a document sharing no vocabulary with the corpus maps
// to the zero vector.
func (v *Vectorizer) Transform(document string) Vector {
	return v.vectorize(v.tokenize(document))
}

// VocabularySize returns the number of terms learned during fit.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

func (v *Vectorizer) tokenize(document string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(document), -1)
	filtered := tokens[:0]
	for _, token := range tokens {
		if !v.stopWords.Contains(token) {
			filtered = append(filtered, token)
		}
	}
	return filtered
}

func (v *Vectorizer) vectorize(tokens []string) Vector {
	counts := make(map[int32]float32)
	for _, token := range tokens {
		if index, exist := v.vocabulary[token]; exist {
			counts[index]++
		}
	}
	vector := Vector{
		Indices: make([]int32, 0, len(counts)),
		Values:  make([]float32, 0, len(counts)),
	}
	for index := range counts {
		vector.Indices = append(vector.Indices, index)
	}
	sort.Slice(vector.Indices, func(i, j int) bool {
		return vector.Indices[i] < vector.Indices[j]
	})
	var norm float32
	for _, index := range vector.Indices {
		value := counts[index] * v.idf[index]
		vector.Values = append(vector.Values, value)
		norm += value * value
	}
	// l2 normalization, skipped for the zero vector
	if norm > 0 {
		norm = math32.Sqrt(norm)
		for i := range vector.Values {
			vector.Values[i] /= norm
		}
	}
	return vector
}
