package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// probeEntries is the fixed set of format- and stream-level fields requested
// from ffprobe. Only these fields feed the report columns.
const probeEntries = "format=format_name,bit_rate,duration:" +
	"stream=index,codec_name,codec_type,profile,width,height,r_frame_rate,bit_rate,color_space,color_transfer,tags"

// ProbeResult is the parsed ffprobe JSON document for one file.
type ProbeResult struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Format holds container-level fields. Numeric values arrive as strings.
type Format struct {
	FormatName string `json:"format_name"`
	BitRate    string `json:"bit_rate"`
	Duration   string `json:"duration"`
}

// Stream holds per-stream fields for video and audio streams alike; fields
// that do not apply to a stream's codec type are simply absent.
type Stream struct {
	Index         int               `json:"index"`
	CodecName     string            `json:"codec_name"`
	CodecType     string            `json:"codec_type"`
	Profile       string            `json:"profile"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	RFrameRate    string            `json:"r_frame_rate"`
	BitRate       string            `json:"bit_rate"`
	ColorSpace    string            `json:"color_space"`
	ColorTransfer string            `json:"color_transfer"`
	Tags          map[string]string `json:"tags"`
}

// RunFFProbe inspects a single file with ffprobe and parses its JSON output.
// A non-zero exit or malformed output is returned as an error; the caller
// decides whether that aborts anything (during a scan it never does).
func RunFFProbe(ctx context.Context, filePath string) (*ProbeResult, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", probeEntries,
		"-of", "json",
		filePath)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe exit code %d: %s", exitErr.ExitCode(), bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, err
	}

	var result ProbeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe JSON output: %w", err)
	}

	return &result, nil
}

// CheckFFprobeAvailable verifies that ffprobe is available in PATH
func CheckFFprobeAvailable() error {
	_, err := exec.LookPath("ffprobe")
	if err != nil {
		return fmt.Errorf("ffprobe not found in PATH - please install FFmpeg")
	}
	return nil
}
