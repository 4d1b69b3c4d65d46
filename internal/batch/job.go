package batch

import (
	"bufio"
	"bytes"
	"errors"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
)

var ErrEmptyJob = errors.New("job file has no URL")

// ParseJob reads a job file: the video URL on the first non-blank line and
// an optional target language on the next one. Lines starting with # are
// ignored.
func ParseJob(data []byte) (pipeline.Request, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
		if len(lines) == 2 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return pipeline.Request{}, err
	}
	if len(lines) == 0 {
		return pipeline.Request{}, ErrEmptyJob
	}

	req := pipeline.Request{URL: lines[0]}
	if len(lines) > 1 {
		req.TargetLanguage = strings.ToLower(lines[1])
	}
	return req, nil
}
