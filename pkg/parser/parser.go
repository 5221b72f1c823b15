package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// readBufferSize is the initial read buffer; lines longer than this are
// still returned whole.
const readBufferSize = 64 * 1024

// StreamSource implements LineSource over a single reader. Lines may be
// of any length; only the current line is held in memory.
type StreamSource struct {
	name    string
	reader  *bufio.Reader
	closer  io.Closer
	lineNum int
	done    bool
}

// NewStreamSource reads lines from r, reporting them as coming from name.
// If r is an io.Closer it is closed by Close.
func NewStreamSource(name string, r io.Reader) *StreamSource {
	s := &StreamSource{
		name:   name,
		reader: bufio.NewReaderSize(r, readBufferSize),
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Next returns the next line. A final line without a terminator is
// returned before io.EOF.
func (s *StreamSource) Next(ctx context.Context) (*LogLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.done {
		return nil, io.EOF
	}

	content, err := s.reader.ReadBytes('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading %s: %w", s.name, err)
		}
		s.done = true
		if len(content) == 0 {
			return nil, io.EOF
		}
	}

	if n := len(content); n > 0 && content[n-1] == '\n' {
		content = content[:n-1]
	}

	s.lineNum++
	return &LogLine{
		Content: content,
		Source:  s.name,
		LineNum: s.lineNum,
	}, nil
}

// Close releases the underlying reader if it is closable.
func (s *StreamSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// FileSource implements LineSource over a list of files read one after
// another. The name "-" reads standard input.
type FileSource struct {
	files []string
	stdin io.Reader

	current   *StreamSource
	fileIndex int
}

// NewFileSource creates a LineSource that reads from the given files in order.
func NewFileSource(files []string) *FileSource {
	return &FileSource{
		files:     files,
		stdin:     os.Stdin,
		fileIndex: -1,
	}
}

// WithStdin replaces the reader used for "-".
func (s *FileSource) WithStdin(r io.Reader) *FileSource {
	if r != nil {
		s.stdin = r
	}
	return s
}

// Next returns the next line across all files.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*LogLine, error) {
	for {
		// Ensure we have a file open
		if s.current == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		line, err := s.current.Next(ctx)
		if err == nil {
			return line, nil
		}
		if !errors.Is(err, io.EOF) {
			return nil, err
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	if path == StdinName {
		// stdin is not ours to close
		s.current = NewStreamSource(StdinName, io.NopCloser(s.stdin))
		return nil
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}
	s.current = NewStreamSource(path, f)
	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.current != nil {
		err := s.current.Close()
		s.current = nil
		return err
	}
	return nil
}
