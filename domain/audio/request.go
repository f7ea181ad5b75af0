package audio

import (
	"context"
	"fmt"
	"path/filepath"
)

// ExtractionRequest represents one file's audio extraction
type ExtractionRequest struct {
	Source    MediaFile
	OutputDir string
	Spec      OutputSpec
	Filters   FilterChain
}

// NewExtractionRequest creates a new ExtractionRequest with validation
func NewExtractionRequest(source MediaFile, outputDir string, spec OutputSpec, filters FilterChain) (*ExtractionRequest, error) {
	if source.Path == "" {
		return nil, fmt.Errorf("source video path is required")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if spec.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be resolved before extraction")
	}

	return &ExtractionRequest{
		Source:    source,
		OutputDir: outputDir,
		Spec:      spec,
		Filters:   filters,
	}, nil
}

// OutputPath returns the output file placed directly in the output directory
func (r *ExtractionRequest) OutputPath() string {
	return filepath.Join(r.OutputDir, r.Source.OutputFilename(r.Spec.Format))
}

// Extractor defines the interface for audio extraction operations
// This is a port that can be implemented by different infrastructure adapters
type Extractor interface {
	// Extract runs the engine for req. A non-zero engine exit is reported as *EngineError.
	Extract(ctx context.Context, req *ExtractionRequest) error

	// CommandLine renders the invocation for req, for diagnostics
	CommandLine(req *ExtractionRequest) string
}

// Discoverer collects the video files to process
type Discoverer interface {
	Discover(root string, recursive bool) ([]MediaFile, error)
}
