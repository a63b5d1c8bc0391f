package types

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"sort"
)

// ErrNoSecrets is returned when a ScanRecord would be created without matches.
var ErrNoSecrets = errors.New("scan record requires at least one secret")

// ExtractedSecret maps variable names to their literal (unstripped) values
// for a single fetched file.
type ExtractedSecret map[string]string

// Keys returns the variable names in sorted order.
func (e ExtractedSecret) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ScanRecord is one file's worth of high-entropy assignments.
type ScanRecord struct {
	ID      string // SHA-1(label + '\0' + file + '\0' + raw_url)
	Owner   string
	Label   string
	File    string
	RawURL  string
	Secrets ExtractedSecret
}

// NewScanRecord builds a record for a candidate. It fails when secrets is empty.
func NewScanRecord(c Candidate, secrets ExtractedSecret) (*ScanRecord, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSecrets
	}

	copied := make(ExtractedSecret, len(secrets))
	for k, v := range secrets {
		copied[k] = v
	}

	return &ScanRecord{
		ID:      ComputeRecordID(c.Label, c.File, c.RawURL),
		Owner:   c.Owner,
		Label:   c.Label,
		File:    c.File,
		RawURL:  c.RawURL,
		Secrets: copied,
	}, nil
}

// ComputeRecordID computes a content-based record ID.
// Format: SHA-1(label + '\0' + file + '\0' + raw_url)
func ComputeRecordID(label, file, rawURL string) string {
	h := sha1.New()
	h.Write([]byte(label))
	h.Write([]byte{0})
	h.Write([]byte(file))
	h.Write([]byte{0})
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}
