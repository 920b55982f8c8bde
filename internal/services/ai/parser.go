package ai

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// AmbiguousMarker prefixes a response listing candidate locations instead
// of a normal answer. The prompt templates instruct the model to use it.
const AmbiguousMarker = "AMBIGUOUS:"

// subjectBodySeparator splits a composed email into subject and HTML body.
const subjectBodySeparator = "---"

var convertedTimeRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

// ParseKeyValues splits text into lines and maps everything before the
// first colon of each line (trimmed) to everything after it (trimmed,
// later colons preserved). Lines without a colon are skipped. Callers
// check for the keys their operation requires.
func ParseKeyValues(text string) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		result[key] = strings.TrimSpace(value)
	}
	return result
}

// AmbiguousCandidates reports whether text is an ambiguous-location
// response and returns the pipe-separated candidate list, trimmed.
func AmbiguousCandidates(text string) ([]string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, AmbiguousMarker) {
		return nil, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, AmbiguousMarker))
	parts := strings.Split(rest, "|")
	candidates := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			candidates = append(candidates, trimmed)
		}
	}
	return candidates, true
}

// ParseSubjectBody splits a composed email on the literal "---" separator:
// the first part is the subject, the remainder (with any further
// separators preserved) is the HTML body.
func ParseSubjectBody(op, text string) (subject, body string, err error) {
	parts := strings.Split(strings.TrimSpace(text), subjectBodySeparator)
	if len(parts) < 2 {
		return "", "", &MalformedResponseError{Op: op, Raw: text}
	}
	subject = strings.TrimSpace(parts[0])
	body = strings.TrimSpace(strings.Join(parts[1:], subjectBodySeparator))
	return subject, body, nil
}

// ParseAnalysis extracts the SUMMARY and SENTIMENT labels from a document
// analysis response. Both labels are line-anchored; either missing is a
// malformed response.
func ParseAnalysis(op, text string) (*Analysis, error) {
	var summary, sentiment string
	var haveSummary, haveSentiment bool

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "SUMMARY:"); ok && !haveSummary {
			summary = strings.TrimSpace(rest)
			haveSummary = true
		}
		if rest, ok := strings.CutPrefix(line, "SENTIMENT:"); ok && !haveSentiment {
			sentiment = strings.TrimSpace(rest)
			haveSentiment = true
		}
	}

	if !haveSummary || !haveSentiment {
		return nil, &MalformedResponseError{Op: op, Raw: text}
	}
	return &Analysis{Summary: summary, Sentiment: sentiment}, nil
}

// ParseDelay interprets the entire trimmed text as a non-negative integer
// number of milliseconds.
func ParseDelay(op, text string) (time.Duration, error) {
	ms, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || ms < 0 {
		return 0, &MalformedResponseError{Op: op, Raw: text}
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// ParseConversion splits a time-conversion response into the converted
// timestamp (first line, which must look like "YYYY-MM-DD HH:mm:ss") and
// the explanation (remaining lines).
func ParseConversion(op, text string) (convertedTime, explanation string, err error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 || !convertedTimeRe.MatchString(lines[0]) {
		return "", "", &MalformedResponseError{Op: op, Raw: text}
	}
	convertedTime = strings.TrimSpace(lines[0])
	explanation = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	return convertedTime, explanation, nil
}
