// Package faq provides BM25 retrieval over the FAQ knowledge base.
package faq

import (
	"fmt"
	"log"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/shopmate-ai/shopmate/internal/agent"
)

// Entry is one question/answer pair from the FAQ dataset.
type Entry struct {
	ID       string
	Question string
	Answer   string
}

// Index provides BM25 keyword search over FAQ entries.
type Index struct {
	index bleve.Index
	path  string
}

// NewIndex creates or opens a persistent FAQ index at indexPath.
// If the index is corrupted, it is deleted and recreated.
func NewIndex(indexPath string) (*Index, error) {
	index, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create FAQ index: %w", err)
		}
		log.Println("📚 FAQ index created")
	} else if err != nil {
		log.Printf("⚠️  FAQ index appears corrupted (error: %v), recreating...", err)

		if index != nil {
			index.Close()
		}
		if err := os.RemoveAll(indexPath); err != nil {
			log.Printf("⚠️  Failed to remove corrupted index directory: %v", err)
		}

		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to recreate FAQ index: %w", err)
		}
		log.Println("✅ FAQ index recreated (corrupted index was deleted)")
	}

	return &Index{index: index, path: indexPath}, nil
}

// NewMemIndex creates an in-memory FAQ index. Used in tests and when no
// persistence is needed.
func NewMemIndex() (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create FAQ index: %w", err)
	}
	return &Index{index: index}, nil
}

// buildIndexMapping creates the index mapping for FAQ entries.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	entryMapping := bleve.NewDocumentMapping()

	// Searchable text field (analyzed)
	questionField := bleve.NewTextFieldMapping()
	questionField.Analyzer = standard.Name
	questionField.Store = true
	questionField.Index = true
	entryMapping.AddFieldMappingsAt("question", questionField)

	// Stored field (not analyzed, just stored)
	answerField := bleve.NewTextFieldMapping()
	answerField.Analyzer = keyword.Name
	answerField.Store = true
	answerField.Index = false
	entryMapping.AddFieldMappingsAt("answer", answerField)

	indexMapping.DefaultMapping = entryMapping

	return indexMapping
}

// Ingest indexes the given entries in one batch. Re-ingesting the same
// IDs overwrites the previous documents, so ingestion is idempotent.
func (x *Index) Ingest(entries []Entry) error {
	batch := x.index.NewBatch()

	for i := range entries {
		entry := &entries[i]
		id := entry.ID
		if id == "" {
			id = fmt.Sprintf("id_%d", i)
		}
		doc := map[string]interface{}{
			"question": entry.Question,
			"answer":   entry.Answer,
		}
		if err := batch.Index(id, doc); err != nil {
			return fmt.Errorf("failed to add entry %s to batch: %w", id, err)
		}
	}

	return x.index.Batch(batch)
}

// Count returns the number of indexed entries.
func (x *Index) Count() (uint64, error) {
	return x.index.DocCount()
}

// Search performs a BM25 search and returns the top k entries.
func (x *Index) Search(query string, k int) ([]agent.KnowledgeItem, error) {
	q := bleve.NewMatchQuery(query)
	q.SetField("question")

	searchRequest := bleve.NewSearchRequest(q)
	searchRequest.Size = k
	searchRequest.Fields = []string{"question", "answer"}

	searchResult, err := x.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("FAQ search failed: %w", err)
	}

	items := make([]agent.KnowledgeItem, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		item := agent.KnowledgeItem{Score: hit.Score}
		if question, ok := hit.Fields["question"].(string); ok {
			item.Question = question
		}
		if answer, ok := hit.Fields["answer"].(string); ok {
			item.Answer = answer
		}
		items = append(items, item)
	}

	return items, nil
}

// Close closes the underlying index.
func (x *Index) Close() error {
	return x.index.Close()
}
