package ffmpeg

import (
	"bufio"
	"context"
	"strings"
	"sync"

	"nature-audio-extractor/domain/audio"
)

// Prober implements audio.FilterProber by listing `ffmpeg -filters`.
// The listing is fetched at most once per Prober.
type Prober struct {
	ffmpegPath string
	runner     CommandRunner

	mu      sync.Mutex
	fetched bool
	listing string
	names   map[string]bool
	answers map[string]bool
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithProberFFmpegPath sets a custom ffmpeg executable path
func WithProberFFmpegPath(path string) ProberOption {
	return func(p *Prober) {
		p.ffmpegPath = path
	}
}

// WithProberCommandRunner sets a custom command runner (for testing)
func WithProberCommandRunner(runner CommandRunner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// NewProber creates a new capability prober
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
		answers:    make(map[string]bool),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// SupportsFilter implements audio.FilterProber. Any failure to query the
// engine is reported as "not supported".
func (p *Prober) SupportsFilter(ctx context.Context, name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if answer, ok := p.answers[name]; ok {
		return answer
	}
	if !p.fetched {
		p.fetch(ctx)
	}

	var answer bool
	if len(p.names) > 0 {
		answer = p.names[name]
	} else {
		answer = name != "" && strings.Contains(p.listing, name)
	}
	p.answers[name] = answer
	return answer
}

func (p *Prober) fetch(ctx context.Context) {
	p.fetched = true
	out, err := p.runner.CombinedOutput(ctx, p.ffmpegPath, "-hide_banner", "-filters")
	if err != nil {
		return
	}
	p.listing = string(out)
	p.names = parseFilterNames(p.listing)
}

// parseFilterNames reads rows of the form
//
//	 .. highpass          A->A       Apply a high-pass filter ...
//
// and returns the filter names (second column). Header lines are skipped
// because their second column is not followed by an "->" signature.
func parseFilterNames(listing string) map[string]bool {
	names := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(listing))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || !strings.Contains(fields[2], "->") {
			continue
		}
		names[fields[1]] = true
	}
	return names
}

// Ensure Prober implements audio.FilterProber
var _ audio.FilterProber = (*Prober)(nil)
