package adapter

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	m "covreduct.dev/pkg/covreduct/internal/model"
)

const (
	opInfo     = "info"
	opBlame    = "blame"
	opCheckout = "checkout"
)

var (
	errNoWhitespace   = errors.New("no whitespace after revision")
	errNotARevision   = errors.New("leading token is not a revision number")
	errEmptyOutput    = errors.New("no output")
	errMissingInfoKey = errors.New("missing key")
)

// InfoConsumer collects `key: value` lines of `svn info` output. Lines without a
// colon are ignored; keys and values are trimmed.
type InfoConsumer struct {
	Properties map[string]string
}

// NewInfoConsumer creates an empty InfoConsumer.
func NewInfoConsumer() *InfoConsumer {
	return &InfoConsumer{Properties: map[string]string{}}
}

// Consume handles one output line.
func (c *InfoConsumer) Consume(line string) {
	line = strings.TrimSpace(line)

	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return
	}

	key := strings.TrimSpace(line[:idx])
	value := strings.TrimSpace(line[idx+1:])
	c.Properties[key] = value
}

// BlameConsumer collects the owning revision of every line of `svn blame` output.
// The first malformed line stops collection and is kept as the consumer's error.
type BlameConsumer struct {
	Revisions []m.Revision
	Err       error
}

// Consume handles one output line.
func (c *BlameConsumer) Consume(line string) {
	if c.Err != nil {
		return
	}

	rev, err := ParseBlameLine(line)
	if err != nil {
		c.Err = err
		return
	}

	c.Revisions = append(c.Revisions, rev)
}

// ParseBlameLine returns the revision in front of the first whitespace run.
func ParseBlameLine(line string) (m.Revision, error) {
	trimmed := strings.TrimSpace(line)

	idx := strings.IndexFunc(trimmed, unicode.IsSpace)
	if idx < 0 {
		return 0, &ParseError{Op: opBlame, Line: line, Err: errNoWhitespace}
	}

	rev, err := strconv.ParseInt(trimmed[:idx], 10, 64)
	if err != nil {
		return 0, &ParseError{Op: opBlame, Line: line, Err: errNotARevision}
	}

	return m.Revision(rev), nil
}

// RevisionConsumer remembers the last line of `svn checkout` output, which carries
// the checked-out revision ("Checked out revision 1234.").
type RevisionConsumer struct {
	last string
}

// Consume handles one output line.
func (c *RevisionConsumer) Consume(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	c.last = line
}

// Revision parses the remembered line: the token after the last space with one
// trailing character stripped.
func (c *RevisionConsumer) Revision() (m.Revision, error) {
	return ParseCheckoutLine(c.last)
}

// ParseCheckoutLine extracts the revision from the final line of checkout output.
func ParseCheckoutLine(line string) (m.Revision, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return 0, &ParseError{Op: opCheckout, Err: errEmptyOutput}
	}

	token := trimmed[strings.LastIndexByte(trimmed, ' ')+1:]
	if len(token) < 2 {
		return 0, &ParseError{Op: opCheckout, Line: line, Err: errNotARevision}
	}

	rev, err := strconv.ParseInt(token[:len(token)-1], 10, 64)
	if err != nil || rev < 0 {
		return 0, &ParseError{Op: opCheckout, Line: line, Err: errNotARevision}
	}

	return m.Revision(rev), nil
}

// ParseInfoRevision reads a revision number stored under key in `svn info` properties.
func ParseInfoRevision(props map[string]string, key string) (m.Revision, error) {
	value, ok := props[key]
	if !ok {
		return 0, &ParseError{Op: opInfo, Line: key, Err: errMissingInfoKey}
	}

	rev, err := strconv.ParseInt(value, 10, 64)
	if err != nil || rev < 0 {
		return 0, &ParseError{Op: opInfo, Line: key + ": " + value, Err: errNotARevision}
	}

	return m.Revision(rev), nil
}

// InfoValue reads a non-empty value stored under key in `svn info` properties.
func InfoValue(props map[string]string, key string) (string, error) {
	value := props[key]
	if value == "" {
		return "", &ParseError{Op: opInfo, Line: key, Err: errMissingInfoKey}
	}

	return value, nil
}
