package sarif

import (
	"encoding/json"
	"fmt"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "envhunter"
)

// HighEntropyRuleID identifies the single envhunter detection rule.
const HighEntropyRuleID = "envhunter.high-entropy"

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule represents a detection rule
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single finding
type Result struct {
	RuleID     string            `json:"ruleId"`
	Level      string            `json:"level"`
	Message    Message           `json:"message"`
	Locations  []Location        `json:"locations"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies the file
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// NewReport creates a new SARIF report with the envhunter rule registered.
// toolVersion is recorded as the driver version.
func NewReport(toolVersion string) *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: toolVersion,
						Rules: []Rule{
							{
								ID:   HighEntropyRuleID,
								Name: "HighEntropyAssignment",
								ShortDescription: ShortDescription{
									Text: "KEY or TOKEN variable assigned a high-entropy value in a .env file",
								},
							},
						},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddRecord adds one result per variable of rec, in sorted key order.
func (r *Report) AddRecord(rec *types.ScanRecord) {
	for _, key := range rec.Secrets.Keys() {
		result := Result{
			RuleID: HighEntropyRuleID,
			Level:  "warning",
			Message: Message{
				Text: fmt.Sprintf("High-entropy value assigned to %s in %s (%s)", key, rec.Label, rec.File),
			},
			Locations: []Location{
				{
					PhysicalLocation: PhysicalLocation{
						ArtifactLocation: ArtifactLocation{URI: rec.RawURL},
					},
				},
			},
			Properties: map[string]string{
				"variable": key,
				"repo":     rec.Label,
				"file":     rec.File,
			},
		}
		if rec.Owner != "" {
			result.Properties["owner"] = rec.Owner
		}

		r.Runs[0].Results = append(r.Runs[0].Results, result)
	}
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
