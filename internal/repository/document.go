// Package repository handles reading and writing the JSON and CSV
// files the rule tooling operates on.
package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"limsrules/internal/core"
	"limsrules/internal/rules"
)

// LoadRulesDocument reads a rules JSON file into generic form. Numbers
// are kept as json.Number so a rewrite preserves their literals. The
// document must carry a top-level "rules" list.
func LoadRulesDocument(path string) (rules.Document, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	if _, ok := doc["rules"].([]any); !ok {
		return nil, &core.StructureError{Path: path, Message: "missing top-level 'rules' list"}
	}
	return doc, nil
}

// LoadSpecsDocument reads a specs JSON file, requiring a top-level
// "specs" list.
func LoadSpecsDocument(path string) (rules.Document, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	if _, ok := doc["specs"].([]any); !ok {
		return nil, &core.StructureError{Path: path, Message: "missing top-level 'specs' list"}
	}
	return doc, nil
}

func loadDocument(path string) (rules.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var doc rules.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &core.StructureError{Path: path, Message: "not a JSON object", Err: err}
	}
	return doc, nil
}
