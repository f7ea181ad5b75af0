package cmd

import (
	"strconv"

	"nature-audio-extractor/domain/audio"

	"github.com/jedib0t/go-pretty/v6/table"
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// renderResults prints one row per processed file
func renderResults(output OutputWriter, summary *audio.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(output)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "File", "Result", "Detail"})

	for i, r := range summary.Results {
		detail := r.OutputPath
		if r.Outcome != audio.OutcomeSucceeded {
			detail = r.Reason
		}
		t.AppendRow(table.Row{i + 1, r.File.Path, r.Outcome.String(), detail})
	}

	t.AppendFooter(table.Row{"", "extracted " + summary.Tally(), "skipped " + strconv.Itoa(summary.Skipped()), "failed " + strconv.Itoa(summary.Failed())})
	t.Render()
}
