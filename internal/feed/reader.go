package feed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/brewer/internal/game/recipe"
)

// DefaultMaxRecords bounds the record count a single turn may announce.
const DefaultMaxRecords = 256

// Reader decodes turns from a line-oriented state feed.
//
// Reader is not safe for concurrent use.
type Reader struct {
	reader     *bufio.Reader
	maxRecords int
	logger     *zap.Logger
	line       int
}

// NewReader wraps r.
//
// Precondition: logger must not be nil. maxRecords <= 0 uses DefaultMaxRecords.
func NewReader(r io.Reader, maxRecords int, logger *zap.Logger) *Reader {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &Reader{
		reader:     bufio.NewReaderSize(r, 4096),
		maxRecords: maxRecords,
		logger:     logger,
	}
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int { return r.line }

// ReadTurn reads one full turn: the count line, that many record lines, and
// the acting party's and opponent's inventory lines.
//
// Postcondition: returns io.EOF (unwrapped) when the feed is closed before a
// turn begins; returns a *ParseError for malformed lines; a feed that closes
// mid-turn yields a *ParseError wrapping io.ErrUnexpectedEOF.
func (r *Reader) ReadTurn() (*recipe.Turn, error) {
	first, err := r.readLine()
	if err != nil {
		return nil, err
	}
	count, err := ParseCount(first, r.maxRecords)
	if err != nil {
		return nil, r.at(err)
	}

	records := make([]recipe.Record, 0, count)
	for i := 0; i < count; i++ {
		line, err := r.nextLine()
		if err != nil {
			return nil, err
		}
		rec, err := ParseRecord(line)
		if err != nil {
			return nil, r.at(err)
		}
		records = append(records, rec)
	}

	var parties [2]recipe.Party
	for i := range parties {
		line, err := r.nextLine()
		if err != nil {
			return nil, err
		}
		if parties[i], err = ParseParty(line); err != nil {
			return nil, r.at(err)
		}
	}

	return &recipe.Turn{
		Catalog:  recipe.BuildCatalog(records, r.logger),
		Me:       parties[0],
		Opponent: parties[1],
	}, nil
}

// readLine returns the next line without its terminator. A final line
// without a trailing newline is returned normally; io.EOF is returned only
// when no bytes remain.
func (r *Reader) readLine() (string, error) {
	s, err := r.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	r.line++
	return strings.TrimRight(s, "\r\n"), nil
}

// nextLine is readLine inside a turn, where running out of input is malformed.
func (r *Reader) nextLine() (string, error) {
	line, err := r.readLine()
	if errors.Is(err, io.EOF) {
		return "", &ParseError{Line: r.line + 1, Err: io.ErrUnexpectedEOF}
	}
	if err != nil {
		return "", fmt.Errorf("feed: reading line %d: %w", r.line+1, err)
	}
	return line, nil
}

// at stamps the current line number onto a *ParseError.
func (r *Reader) at(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Line = r.line
	}
	return err
}
