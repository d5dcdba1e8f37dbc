// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package inmemory implements service.Searcher over a fixed set of
// documents held in process memory, scored by token overlap. It is
// grounded on the teacher's in-memory vector store: a dependency-free
// store for small knowledge bases and tests, not a production vector
// index.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/flowrt/flowrt/service"
)

// Store is a knowledge base held entirely in memory, keyed by
// knowledge-base id.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]service.Document
}

// New builds an empty Store.
func New() *Store {
	return &Store{docs: make(map[string][]service.Document)}
}

// AddDocuments appends docs to knowledgeBaseID's collection.
func (s *Store) AddDocuments(knowledgeBaseID string, docs ...service.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[knowledgeBaseID] = append(s.docs[knowledgeBaseID], docs...)
}

// Search implements service.Searcher by scoring each document in
// knowledgeBaseID on the fraction of query words it contains, and
// returning the topK highest-scoring documents at or above minScore.
func (s *Store) Search(_ context.Context, knowledgeBaseID, query string,
	topK int, minScore float64) (service.SearchResult, error) {
	s.mu.RLock()
	candidates := append([]service.Document(nil), s.docs[knowledgeBaseID]...)
	s.mu.RUnlock()

	words := tokenize(query)
	scored := make([]service.Document, 0, len(candidates))
	for _, doc := range candidates {
		score := overlapScore(words, tokenize(doc.Content))
		if score < minScore {
			continue
		}
		doc.Score = score
		scored = append(scored, doc)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}

	result := service.SearchResult{Results: scored, Grounded: len(scored) > 0}
	if result.Grounded {
		result.Answer = scored[0].Content
		result.Confidence = scored[0].Score
	}
	return result, nil
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

func overlapScore(query, doc []string) float64 {
	if len(query) == 0 {
		return 0
	}
	docSet := make(map[string]bool, len(doc))
	for _, w := range doc {
		docSet[w] = true
	}
	hits := 0
	for _, w := range query {
		if docSet[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}
