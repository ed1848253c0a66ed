package vcard

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tartampluch/go-vcf/internal/config"
)

// LineReader reads one logical (unfolded) line at a time from a text stream.
//
// Every physical line must end with CRLF; anything else is an ErrInvalidCard,
// distinct from io.EOF at end of input. Physical lines starting with a space
// or tab are continuations: exactly one leading whitespace character is
// stripped and the remainder is appended to the growing logical line. The
// first non-continuation line is left unconsumed for the next read.
//
// A logical line is bounded by config.MaxLogicalLineLen: folding stops when
// appending the next segment would exceed it, the partial line is returned
// as valid, and the unconsumed continuation starts the next read. A single
// physical line longer than config.ReadBufferSize is an ErrExhausted.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps r for logical-line reading.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, config.ReadBufferSize)}
}

// peekPhysicalLine returns the next physical line, terminator included,
// without consuming it.
func (lr *LineReader) peekPhysicalLine() ([]byte, error) {
	buf, err := lr.r.Peek(config.ReadBufferSize)
	if len(buf) == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	idx := bytes.IndexByte(buf, '\n')
	if idx < 0 {
		if errors.Is(err, io.EOF) {
			// Trailing bytes with no terminator at all.
			return nil, fmt.Errorf("%w: line lacks CRLF terminator", ErrInvalidCard)
		}
		return nil, fmt.Errorf("%w: physical line exceeds %d bytes", ErrExhausted, config.ReadBufferSize)
	}

	if idx < 1 || buf[idx-1] != '\r' {
		return nil, fmt.Errorf("%w: line lacks CRLF terminator", ErrInvalidCard)
	}

	return buf[:idx+1], nil
}

// ReadLogicalLine returns the next unfolded line with its terminator
// stripped. It returns io.EOF at end of input.
func (lr *LineReader) ReadLogicalLine() (string, error) {
	first, err := lr.peekPhysicalLine()
	if err != nil {
		return "", err
	}

	logical := make([]byte, 0, len(first))
	logical = append(logical, first[:len(first)-2]...)
	if _, err := lr.r.Discard(len(first)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	for {
		lead, err := lr.r.Peek(1)
		if err != nil || (lead[0] != ' ' && lead[0] != '\t') {
			break
		}

		next, err := lr.peekPhysicalLine()
		if err != nil {
			// A continuation line with a bad terminator poisons the whole
			// logical line.
			return "", err
		}

		// Strip the terminator, then exactly one leading whitespace char.
		segment := next[1 : len(next)-2]
		if len(logical)+len(segment) > config.MaxLogicalLineLen {
			slog.Debug(config.MsgFoldStopped,
				config.LogKeyComponent, config.CompParser,
				config.LogKeyLineLen, len(logical),
			)
			break
		}

		logical = append(logical, segment...)
		if _, err := lr.r.Discard(len(next)); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
	}

	return string(logical), nil
}
