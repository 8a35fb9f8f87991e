// ==============================================================================================
// FILE: parser/stream.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Streaming parser entry point. Buffers bytes read from an io.Reader in chunks
//          (default 1024), and whenever a ';' is found outside a string and outside a
//          comment, parses the just-completed block fragment independently and appends it
//          to an internal list. Incomplete trailing text survives across reads.
// ==============================================================================================

package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/oops"
)

const defaultChunkSize = 1024

// Stream is the streaming counterpart to ParseString.
type Stream struct {
	r         io.Reader
	chunkSize int
	buf       string
	blocks    []ParsedBlock
}

// NewStream wraps r. A chunkSize of 0 selects the 1024-byte default.
func NewStream(r io.Reader, chunkSize int) *Stream {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Stream{r: r, chunkSize: chunkSize}
}

// Parse reads one chunk from the underlying reader and parses any blocks
// newly completed by it. It returns the index (within Blocks) of the first
// newly appended block, or -1 if this read completed none. err is io.EOF
// once the reader is exhausted.
func (s *Stream) Parse() (int, error) {
	chunk := make([]byte, s.chunkSize)
	n, err := s.r.Read(chunk)
	if n == 0 {
		if err != nil {
			return -1, err
		}
		return -1, nil
	}
	s.buf += string(chunk[:n])

	start := -1
	for {
		blockText, rest, found := splitFirstBlock(s.buf)
		if !found {
			s.buf = rest
			break
		}

		parsed, perr := parseString(blockText)
		if perr != nil {
			return -1, wrapParseError(fmt.Errorf("parser: stream block: %w", perr))
		}
		if start == -1 {
			start = len(s.blocks)
		}
		s.blocks = append(s.blocks, parsed...)
		s.buf = rest
	}

	if err != nil {
		return start, err
	}
	return start, nil
}

// Blocks returns every block parsed so far without clearing them.
func (s *Stream) Blocks() []ParsedBlock { return s.blocks }

// Sink drains the accumulated blocks. It fails if a block fragment is still
// being buffered (the most recent read ended mid-block, before its ';').
func (s *Stream) Sink() ([]ParsedBlock, error) {
	if strings.TrimSpace(s.buf) != "" {
		return nil, oops.Code(CodeStreamIncomplete).Errorf("parser: stream incomplete: a block is still being buffered")
	}
	out := s.blocks
	s.blocks = nil
	return out, nil
}

// splitFirstBlock finds the first ';' in buf that is outside a quoted
// string and outside a comment, splitting buf there. The boundary scan only
// tracks string/comment state -- not in_vec/in_map -- because a well-formed
// block never leaves a vector or map open across its own terminator.
func splitFirstBlock(buf string) (blockText, rest string, found bool) {
	inString, inComment := false, false
	runes := []rune(buf)
	for i, c := range runes {
		switch {
		case c == '"' && !inComment:
			inString = !inString
		case c == '#' && !inString:
			inComment = true
		case c == '\n' && inComment && !inString:
			inComment = false
		case c == ';' && !inString && !inComment:
			return string(runes[:i+1]), string(runes[i+1:]), true
		}
	}
	return "", buf, false
}
