package lib

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// hdrKeywords are the color metadata markers used to guess HDR content.
// Best-effort heuristic, not a certified classification.
var hdrKeywords = []string{"bt2020", "smpte2084", "arib-std-b67"}

// ReportRow is one line of the catalog report. The string fields hold
// pre-formatted cell values; an empty string renders as a blank cell.
// Rows are built once and never mutated.
type ReportRow struct {
	Path        string
	SizeGB      float64
	Resolution  string
	AudioTracks string
	VideoCodec  string
	Profile     string
	BitrateKbps string
	Container   string
	FrameRate   string
	HDR         string
}

// Cells returns the row's column values in report order.
func (r ReportRow) Cells() []string {
	return []string{
		r.Path,
		fmt.Sprintf("%.3f", r.SizeGB),
		r.Resolution,
		r.AudioTracks,
		r.VideoCodec,
		r.Profile,
		r.BitrateKbps,
		r.Container,
		r.FrameRate,
		r.HDR,
	}
}

// SizeInGB converts a byte count to gigabytes, rounded to 3 decimal places.
func SizeInGB(bytes int64) float64 {
	return math.Round(float64(bytes)/(1<<30)*1000) / 1000
}

// ParseFrameRate converts ffprobe's fractional "N/D" rate into "<fps> fps"
// with 3 decimal places. Malformed input or a zero denominator yields "".
func ParseFrameRate(rate string) string {
	num, denom, ok := strings.Cut(rate, "/")
	if !ok {
		return ""
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return ""
	}
	d, err := strconv.Atoi(denom)
	if err != nil || d == 0 {
		return ""
	}
	return fmt.Sprintf("%.3f fps", float64(n)/float64(d))
}

// DetectHDR guesses whether a stream is HDR or SDR from its color metadata.
// Either field containing a known HDR marker classifies the stream as HDR;
// absent metadata classifies as SDR.
func DetectHDR(colorSpace, colorTransfer string) string {
	space := strings.ToLower(colorSpace)
	transfer := strings.ToLower(colorTransfer)
	for _, keyword := range hdrKeywords {
		if strings.Contains(space, keyword) || strings.Contains(transfer, keyword) {
			return "HDR"
		}
	}
	return "SDR"
}

// BuildRow converts one probe result, or nil if probing failed, plus the
// file's size into a report row. Missing or malformed fields degrade to
// blank cells; HDR/SDR always has a value. The first video stream determines
// resolution, codec, profile, frame rate, and HDR status; later video
// streams are ignored. Every audio stream contributes a track descriptor in
// container order.
func BuildRow(path string, sizeBytes int64, probe *ProbeResult) ReportRow {
	row := ReportRow{
		Path:   path,
		SizeGB: SizeInGB(sizeBytes),
		HDR:    "SDR",
	}
	if probe == nil {
		return row
	}

	row.Container = probe.Format.FormatName
	if bps, err := strconv.ParseInt(probe.Format.BitRate, 10, 64); err == nil {
		row.BitrateKbps = fmt.Sprintf("%.2f", float64(bps)/1000)
	}

	var audioTracks []string
	haveVideo := false
	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if haveVideo {
				continue
			}
			haveVideo = true
			row.Resolution = fmt.Sprintf("%dx%d", stream.Width, stream.Height)
			row.VideoCodec = stream.CodecName
			row.Profile = stream.Profile
			row.FrameRate = ParseFrameRate(stream.RFrameRate)
			row.HDR = DetectHDR(stream.ColorSpace, stream.ColorTransfer)
		case "audio":
			audioTracks = append(audioTracks, audioTrackDescriptor(stream))
		}
	}
	row.AudioTracks = strings.Join(audioTracks, "; ")

	return row
}

// audioTrackDescriptor formats one audio stream as "Track <index>/<codec>/<LANG>".
func audioTrackDescriptor(stream Stream) string {
	language := "UNKNOWN"
	if lang := stream.Tags["language"]; lang != "" {
		language = strings.ToUpper(lang)
	}
	return fmt.Sprintf("Track %d/%s/%s", stream.Index, stream.CodecName, language)
}
