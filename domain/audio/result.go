package audio

import (
	"fmt"

	"go.uber.org/multierr"
)

// Outcome is the terminal state of one file in a batch
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeFailed
	OutcomeSkippedNoAudio
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "ok"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkippedNoAudio:
		return "skipped"
	}
	return "unknown"
}

// Result records what happened to one MediaFile
type Result struct {
	File        MediaFile
	Outcome     Outcome
	OutputPath  string // set on success
	Reason      string // set on failure or skip
	CommandLine string // set on failure
	Stderr      string
}

// Summary aggregates the results of a batch run
type Summary struct {
	Results []Result
}

// Add appends a result
func (s *Summary) Add(r Result) {
	s.Results = append(s.Results, r)
}

// Total returns the number of files attempted
func (s *Summary) Total() int {
	return len(s.Results)
}

// Succeeded returns the number of files extracted
func (s *Summary) Succeeded() int {
	return s.count(OutcomeSucceeded)
}

// Skipped returns the number of files without an audio stream
func (s *Summary) Skipped() int {
	return s.count(OutcomeSkippedNoAudio)
}

// Failed returns the number of hard failures
func (s *Summary) Failed() int {
	return s.count(OutcomeFailed)
}

// Tally returns "<extracted>/<attempted>"
func (s *Summary) Tally() string {
	return fmt.Sprintf("%d/%d", s.Succeeded(), s.Total())
}

// Err combines every hard failure into one error, or returns nil.
// Skipped files are not errors.
func (s *Summary) Err() error {
	var err error
	for _, r := range s.Results {
		if r.Outcome == OutcomeFailed {
			err = multierr.Append(err, fmt.Errorf("%s: %s", r.File.Path, r.Reason))
		}
	}
	return err
}

func (s *Summary) count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}
