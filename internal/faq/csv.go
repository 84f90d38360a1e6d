package faq

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/docker/go-units"
)

// LoadCSV reads FAQ entries from a CSV file with 'question' and 'answer'
// columns. Column order is taken from the header row.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FAQ csv: %w", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		log.Printf("📥 Loading FAQ data from %s (%s)", path, units.HumanSize(float64(info.Size())))
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ csv header: %w", err)
	}

	questionCol, answerCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "question":
			questionCol = i
		case "answer":
			answerCol = i
		}
	}
	if questionCol < 0 || answerCol < 0 {
		return nil, fmt.Errorf("FAQ csv must have 'question' and 'answer' columns, got %v", header)
	}

	var entries []Entry
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("⚠️  Skipping malformed FAQ row at line %d: %v", line, err)
			continue
		}
		if questionCol >= len(record) || answerCol >= len(record) {
			log.Printf("⚠️  Skipping malformed FAQ row at line %d", line)
			continue
		}
		question := strings.TrimSpace(record[questionCol])
		answer := strings.TrimSpace(record[answerCol])
		if question == "" {
			continue
		}
		entries = append(entries, Entry{
			ID:       fmt.Sprintf("id_%d", len(entries)),
			Question: question,
			Answer:   answer,
		})
	}

	return entries, nil
}

// IngestCSV loads the CSV at path into the index.
func (x *Index) IngestCSV(path string) (int, error) {
	entries, err := LoadCSV(path)
	if err != nil {
		return 0, err
	}
	if err := x.Ingest(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}
