package storage

import (
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeFunc returns the duration of a media file in seconds.
type ProbeFunc func(path string) (float64, error)

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration runs ffprobe on path.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(out string) (float64, error) {
	var p probeOutput
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		return 0, fmt.Errorf("decode probe output: %w", err)
	}
	if p.Format.Duration == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(p.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", p.Format.Duration, err)
	}
	return d, nil
}
