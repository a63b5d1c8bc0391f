package report

import (
	"fmt"
	"io"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

// WriteHuman renders records for reading in a terminal.
func WriteHuman(w io.Writer, records []*types.ScanRecord, s *Styles) error {
	total := len(records)
	for i, r := range records {
		fmt.Fprintf(w, "%s (%s %s)\n",
			s.Repo.Sprintf("Record %d/%d", i+1, total),
			s.Heading.Sprint("id"),
			s.Value.Sprint(r.ID))

		fmt.Fprintf(w, "%s %s\n", s.Heading.Sprint("Repo:"), s.Repo.Sprint(r.Label))
		if r.Owner != "" {
			fmt.Fprintf(w, "%s %s\n", s.Heading.Sprint("Owner:"), r.Owner)
		}
		fmt.Fprintf(w, "%s %s\n", s.Heading.Sprint("File:"), s.File.Sprint(r.File))
		fmt.Fprintf(w, "%s %s\n", s.Heading.Sprint("URL:"), s.File.Sprint(r.RawURL))

		for _, k := range r.Secrets.Keys() {
			fmt.Fprintf(w, "    %s = %s\n", s.Key.Sprint(k), r.Secrets[k])
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
