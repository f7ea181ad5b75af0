package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"nature-audio-extractor/domain/audio"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// FileSystem provides the output-side file operations the batch needs
type FileSystem interface {
	EnsureDir(dir string) error
	Size(path string) int64
}

// Service runs a batch of audio extractions, one file at a time
type Service struct {
	extractor  audio.Extractor
	discoverer audio.Discoverer
	prober     audio.FilterProber
	fs         FileSystem
	log        *zap.Logger
	output     io.Writer
}

// NewService creates a new Service
func NewService(
	extractor audio.Extractor,
	discoverer audio.Discoverer,
	prober audio.FilterProber,
	fs FileSystem,
	log *zap.Logger,
	output io.Writer,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		extractor:  extractor,
		discoverer: discoverer,
		prober:     prober,
		fs:         fs,
		log:        log,
		output:     output,
	}
}

// Input represents the resolved settings for one batch run
type Input struct {
	InputPath  string // folder or single video file
	OutputDir  string
	Recursive  bool
	Format     string
	SampleRate int    // 0 picks the format default
	Channels   int    // 0 picks mono
	Bitrate    string // mp3 only
	Profile    audio.NoiseProfile
}

// Run discovers the input files and extracts each one. Per-file failures are
// recorded in the summary and never stop the batch. The returned error is
// reserved for problems that make the whole run impossible.
func (s *Service) Run(ctx context.Context, input Input) (*audio.Summary, error) {
	spec, err := audio.NewOutputSpec(input.Format, input.SampleRate, input.Channels, input.Bitrate)
	if err != nil {
		return nil, err
	}
	if err := input.Profile.Validate(); err != nil {
		return nil, err
	}

	files, err := s.discoverer.Discover(input.InputPath, input.Recursive)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}

	summary := &audio.Summary{}
	if len(files) == 0 {
		fmt.Fprintf(s.output, "No video files found. Supported: %s\n", strings.Join(audio.VideoExtensions(), ", "))
		s.log.Info("no input files", zap.String("input", input.InputPath))
		return summary, nil
	}

	chain := audio.BuildFilterChain(ctx, input.Profile, s.prober)
	s.log.Info("filter chain built",
		zap.String("chain", chain.String()),
		zap.Int("stages", len(chain)),
	)

	if err := s.fs.EnsureDir(input.OutputDir); err != nil {
		return nil, err
	}

	fmt.Fprintf(s.output, "Found %d file(s). Output -> %s\n", len(files), input.OutputDir)

	for i, file := range files {
		if ctx.Err() != nil {
			s.log.Warn("batch interrupted", zap.Int("remaining", len(files)-i))
			fmt.Fprintf(s.output, "Interrupted, %d file(s) not processed.\n", len(files)-i)
			break
		}

		fmt.Fprintf(s.output, "(%d/%d) %s\n", i+1, len(files), file.Path)

		summary.Add(s.processFile(ctx, file, input.OutputDir, spec, chain))
	}

	fmt.Fprintf(s.output, "\nDone. %s files extracted.\n", summary.Tally())
	s.log.Info("batch finished",
		zap.Int("total", summary.Total()),
		zap.Int("succeeded", summary.Succeeded()),
		zap.Int("skipped", summary.Skipped()),
		zap.Int("failed", summary.Failed()),
	)

	return summary, ctx.Err()
}

// processFile runs one extraction and classifies its outcome. Every problem
// is recorded on the result so the batch always continues.
func (s *Service) processFile(ctx context.Context, file audio.MediaFile, outputDir string, spec audio.OutputSpec, chain audio.FilterChain) audio.Result {
	log := s.log.With(zap.String("file", file.Path))
	result := audio.Result{File: file}

	req, err := audio.NewExtractionRequest(file, outputDir, spec, chain)
	if err != nil {
		result.Outcome = audio.OutcomeFailed
		result.Reason = err.Error()
		fmt.Fprintf(s.output, "[FAIL] %s: %v\n", file.Path, err)
		log.Error("invalid extraction request", zap.Error(err))
		return result
	}

	log.Debug("extracting", zap.String("command", s.extractor.CommandLine(req)))

	err = s.extractor.Extract(ctx, req)
	if err == nil {
		result.Outcome = audio.OutcomeSucceeded
		result.OutputPath = req.OutputPath()
		size := s.fs.Size(result.OutputPath)
		fmt.Fprintf(s.output, "[OK]   %s -> %s (%s)\n", file.Path, result.OutputPath, humanize.Bytes(uint64(size)))
		log.Info("extracted", zap.String("output", result.OutputPath), zap.Int64("bytes", size))
		return result
	}

	result.CommandLine = s.extractor.CommandLine(req)

	var engErr *audio.EngineError
	if errors.As(err, &engErr) {
		result.Stderr = engErr.Stderr
		if audio.IsNoAudioStream(engErr.Stderr) {
			result.Outcome = audio.OutcomeSkippedNoAudio
			result.Reason = "no audio stream"
			fmt.Fprintf(s.output, "[SKIP] %s (no audio stream)\n", file.Path)
			log.Warn("skipped, no audio stream", zap.Int("exit_code", engErr.ExitCode))
			return result
		}
	}

	result.Outcome = audio.OutcomeFailed
	result.Reason = err.Error()
	fmt.Fprintf(s.output, "[FAIL] %s\n", file.Path)
	fmt.Fprintf(s.output, "[FFMPEG CMD] %s\n", result.CommandLine)
	if result.Stderr != "" {
		fmt.Fprintln(s.output, result.Stderr)
	} else {
		fmt.Fprintln(s.output, err)
	}
	log.Error("extraction failed", zap.Error(err), zap.String("stderr", result.Stderr))
	return result
}
