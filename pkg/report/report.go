// Package report renders scan records: live console lines while scanning
// and a single structured document when the scan ends.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/praetorian-inc/envhunter/pkg/sarif"
	"github.com/praetorian-inc/envhunter/pkg/types"
)

// Document formats.
const (
	FormatYAML  = "yaml"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Entry is the serialized form of one ScanRecord.
type Entry struct {
	Repo    string            `yaml:"repo" json:"repo"`
	Owner   string            `yaml:"owner,omitempty" json:"owner,omitempty"`
	File    string            `yaml:"file" json:"file"`
	Matches map[string]string `yaml:"matches" json:"matches"`
}

// Entries converts records to report entries, preserving order.
func Entries(records []*types.ScanRecord) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			Repo:    r.Label,
			Owner:   r.Owner,
			File:    r.File,
			Matches: r.Secrets,
		})
	}
	return entries
}

// Write renders records to w in the given format. toolVersion is recorded
// in SARIF output.
func Write(w io.Writer, records []*types.ScanRecord, format, toolVersion string) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Entries(records)); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Entries(records))
	case FormatSARIF:
		doc := sarif.NewReport(toolVersion)
		for _, r := range records {
			doc.AddRecord(r)
		}
		data, err := doc.ToJSON()
		if err != nil {
			return fmt.Errorf("encoding sarif report: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}
}

// WriteFile writes the whole report to path in one go, replacing any
// existing file.
func WriteFile(path string, records []*types.ScanRecord, format, toolVersion string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}

	if err := Write(f, records, format, toolVersion); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
