package ffmpeg

import (
	"fmt"
	"regexp"
	"strings"
)

// Pre-compiled regexes for classifying ffmpeg stderr output into failure
// categories. Checked in order by [Classify]; the first match wins.
var (
	reUnsupportedCodec = regexp.MustCompile(
		`(?i)Unknown encoder|Encoder not found|` +
			`Unable to find a suitable output format|` +
			`codec not currently supported in container|` +
			`Could not find tag for codec`)

	reInvalidInput = regexp.MustCompile(
		`(?i)Invalid data found when processing input|` +
			`moov atom not found|` +
			`Error while decoding stream|` +
			`Header missing|` +
			`Invalid frame size`)

	reMissingInput = regexp.MustCompile(
		`No such file or directory`)

	rePermission = regexp.MustCompile(
		`(?i)Permission denied`)

	reDiskFull = regexp.MustCompile(
		`(?i)No space left on device`)
)

// Classify maps ffmpeg stderr output to a short user-facing hint, or ""
// when the failure doesn't match a known category.
func Classify(stderr string) string {
	switch {
	case reUnsupportedCodec.MatchString(stderr):
		return "unsupported codec or container for the chosen format"
	case reInvalidInput.MatchString(stderr):
		return "input file is corrupt or not a valid media file"
	case reMissingInput.MatchString(stderr):
		return "input file disappeared before conversion"
	case rePermission.MatchString(stderr):
		return "permission denied writing the output"
	case reDiskFull.MatchString(stderr):
		return "disk full"
	default:
		return ""
	}
}

// ConvertError wraps a failed ffmpeg invocation with the captured stderr
// tail and a classified hint for the final report.
type ConvertError struct {
	Err    error
	Hint   string // "" when the stderr matched no known category.
	Stderr string // Trimmed tail of ffmpeg's stderr.
}

func (e *ConvertError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("ffmpeg failed: %s", e.Hint)
	}
	return fmt.Sprintf("ffmpeg failed: %v", e.Err)
}

func (e *ConvertError) Unwrap() error { return e.Err }

// stderrTail returns the last n lines of stderr, trimmed. Keeps failure
// reports readable when ffmpeg dumps long context.
func stderrTail(stderr string, n int) string {
	s := strings.TrimSpace(stderr)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
