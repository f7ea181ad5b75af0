package audio

import (
	"context"
	"strconv"
	"strings"
)

// Filter names queried from or passed to the engine
const (
	FilterHighpass  = "highpass"
	FilterLowpass   = "lowpass"
	FilterEqualizer = "equalizer"
	FilterDenoise   = "afftdn"
)

// FilterProber answers whether the engine provides a filter.
// Implementations must never fail: an unknown answer is false.
type FilterProber interface {
	SupportsFilter(ctx context.Context, name string) bool
}

// NoiseProfile holds the parameters of the bird-call denoise chain
type NoiseProfile struct {
	LowCutHz         int     // high-pass cutoff
	HighCutHz        int     // low-pass cutoff
	HumHz            int     // mains hum fundamental; 0 disables the notches
	HumGainDB        float64 // notch depth at HumHz
	HarmonicGainDB   float64 // notch depth at 2*HumHz
	NotchWidth       float64 // Q of both notches
	NoiseReductionDB float64 // afftdn strength
}

// DefaultNoiseProfile returns the profile tuned for bird calls recorded near 50 Hz mains
func DefaultNoiseProfile() NoiseProfile {
	return NoiseProfile{
		LowCutHz:         400,
		HighCutHz:        7000,
		HumHz:            50,
		HumGainDB:        -25,
		HarmonicGainDB:   -18,
		NotchWidth:       1.0,
		NoiseReductionDB: 12,
	}
}

// Validate checks the band edges
func (p NoiseProfile) Validate() error {
	if p.LowCutHz <= 0 {
		return &ConfigurationError{Field: "low cutoff", Value: strconv.Itoa(p.LowCutHz), Reason: "must be positive"}
	}
	if p.HighCutHz <= p.LowCutHz {
		return &ConfigurationError{Field: "high cutoff", Value: strconv.Itoa(p.HighCutHz), Reason: "must be above the low cutoff"}
	}
	if p.HumHz < 0 {
		return &ConfigurationError{Field: "hum frequency", Value: strconv.Itoa(p.HumHz), Reason: "must not be negative"}
	}
	return nil
}

// Param is one key=value option of a filter
type Param struct {
	Key   string
	Value string
}

// Filter is a single stage of the audio filter graph
type Filter struct {
	Name   string
	Params []Param
}

// String renders the stage as name=k=v:k=v
func (f Filter) String() string {
	if len(f.Params) == 0 {
		return f.Name
	}
	parts := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		parts = append(parts, p.Key+"="+p.Value)
	}
	return f.Name + "=" + strings.Join(parts, ":")
}

// FilterChain is an ordered filter graph; stages run left to right
type FilterChain []Filter

// String joins the stages into a single -af expression
func (c FilterChain) String() string {
	stages := make([]string, 0, len(c))
	for _, f := range c {
		stages = append(stages, f.String())
	}
	return strings.Join(stages, ",")
}

// Count returns how many stages use the named filter
func (c FilterChain) Count(name string) int {
	n := 0
	for _, f := range c {
		if f.Name == name {
			n++
		}
	}
	return n
}

// BuildFilterChain composes band isolation, hum notches and adaptive denoise.
// Order matters: band-pass, then notches, then afftdn.
func BuildFilterChain(ctx context.Context, profile NoiseProfile, prober FilterProber) FilterChain {
	chain := FilterChain{
		{Name: FilterHighpass, Params: []Param{{"f", strconv.Itoa(profile.LowCutHz)}}},
		{Name: FilterLowpass, Params: []Param{{"f", strconv.Itoa(profile.HighCutHz)}}},
	}

	// both notches or neither
	if profile.HumHz != 0 && prober.SupportsFilter(ctx, FilterEqualizer) {
		chain = append(chain,
			notch(profile.HumHz, profile.NotchWidth, profile.HumGainDB),
			notch(2*profile.HumHz, profile.NotchWidth, profile.HarmonicGainDB),
		)
	}

	if prober.SupportsFilter(ctx, FilterDenoise) {
		chain = append(chain, Filter{
			Name:   FilterDenoise,
			Params: []Param{{"nr", formatNumber(profile.NoiseReductionDB)}},
		})
	}

	return chain
}

func notch(freq int, width, gain float64) Filter {
	return Filter{
		Name: FilterEqualizer,
		Params: []Param{
			{"f", strconv.Itoa(freq)},
			{"t", "q"},
			{"w", formatWidth(width)},
			{"g", formatNumber(gain)},
		},
	}
}

// formatNumber prints whole numbers without a fractional part
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatWidth always keeps one decimal place, the form ffmpeg docs use for Q
func formatWidth(v float64) string {
	s := formatNumber(v)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
