// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"errors"
	"fmt"
	"io"
	"os"

	"modernc.org/mathutil"
)

const (
	minBufferLen = 1024
	maxBufferLen = 64 * minBufferLen

	eofCh = -1 // Returned by Read and Peek at end of input.
)

// fatalError carries an unrecoverable I/O failure out of the scanner. It is
// recovered exactly once, by the parser's entry point.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

func fatalf(format string, args ...interface{}) {
	panic(&fatalError{fmt.Errorf(format, args...)})
}

// source is what the scanner reads characters from.
type source interface {
	Read() int
	Peek() int
	Pos() int
	SetPos(int)
	String(beg, end int) string
}

var (
	_ source = (*Buffer)(nil)
	_ source = (*utf8Buffer)(nil)
)

// Buffer is a byte source with random access. It handles three cases
//
//   - the whole input is in memory,
//   - a seekable file with only a window of it in memory, reloaded on seek,
//   - a non seekable stream, accumulated in memory as it is read.
//
// Any I/O error while reading panics with a *fatalError.
type Buffer struct {
	buf      []byte
	bufStart int // Offset of buf[0] in the input.
	bufLen   int // Valid bytes in buf.
	fileLen  int // Input length, grows for streams.
	bufPos   int // Current index into buf.

	file   io.ReaderAt
	stream io.Reader
	closer io.Closer
}

// NewBuffer returns a Buffer holding all of b.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{buf: b, bufLen: len(b), fileLen: len(b)}
}

// NewReaderAtBuffer returns a Buffer reading size bytes from r through a
// window of at most 64kB.
func NewReaderAtBuffer(r io.ReaderAt, size int64) *Buffer {
	n := int(size)
	b := &Buffer{
		file:    r,
		fileLen: n,
		buf:     make([]byte, mathutil.Min(n, maxBufferLen)),
	}
	if n > 0 {
		b.SetPos(0)
	}
	return b
}

// NewStreamBuffer returns a Buffer reading r on demand. The whole stream is
// retained so any position already seen can be revisited.
func NewStreamBuffer(r io.Reader) *Buffer {
	return &Buffer{stream: r, buf: make([]byte, minBufferLen)}
}

// OpenBuffer opens the named file. Files not larger than the window are read
// in full and closed immediately, the others stay open until Close.
func OpenBuffer(name string) (*Buffer, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", name, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	if fi.Size() <= maxBufferLen {
		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		return NewBuffer(b), nil
	}

	b := NewReaderAtBuffer(f, fi.Size())
	b.closer = f
	return b, nil
}

// Close releases the underlying file, if any.
func (b *Buffer) Close() error {
	if b.closer == nil {
		return nil
	}

	err := b.closer.Close()
	b.closer = nil
	return err
}

// Read returns the next byte or eofCh.
func (b *Buffer) Read() int {
	switch {
	case b.bufPos < b.bufLen:
		// ok
	case b.Pos() < b.fileLen:
		b.SetPos(b.Pos())
		if b.bufPos >= b.bufLen {
			fatalf("unexpected end of input at offset %d", b.Pos())
		}
	case b.stream != nil && b.readNextStreamChunk() > 0:
		// ok
	default:
		return eofCh
	}

	c := b.buf[b.bufPos]
	b.bufPos++
	return int(c)
}

// Peek returns the next byte without consuming it.
func (b *Buffer) Peek() int {
	pos := b.Pos()
	c := b.Read()
	b.SetPos(pos)
	return c
}

// String returns the input in [beg, end), one character per byte.
func (b *Buffer) String(beg, end int) string { return substring(b, beg, end) }

// Pos returns the offset of the next byte to read.
func (b *Buffer) Pos() int { return b.bufPos + b.bufStart }

// SetPos moves to offset pos. Streams are read forward as needed.
func (b *Buffer) SetPos(pos int) {
	if pos >= b.fileLen && b.stream != nil {
		for pos >= b.fileLen && b.readNextStreamChunk() > 0 {
		}
	}

	if pos < 0 || pos > b.fileLen {
		fatalf("buffer out of bounds access, position: %d", pos)
	}

	switch {
	case pos >= b.bufStart && pos < b.bufStart+b.bufLen:
		b.bufPos = pos - b.bufStart
	case b.file != nil:
		n, err := b.file.ReadAt(b.buf, int64(pos))
		if n == 0 && err != nil && !errors.Is(err, io.EOF) {
			fatalf("%v", err)
		}

		b.bufStart = pos
		b.bufLen = n
		b.bufPos = 0
	default:
		b.bufPos = b.fileLen - b.bufStart
	}
}

// readNextStreamChunk appends the next chunk of the stream to buf, growing
// it when full, and returns the number of bytes read.
func (b *Buffer) readNextStreamChunk() int {
	if b.bufLen == len(b.buf) {
		nb := make([]byte, 2*mathutil.Max(b.bufLen, minBufferLen/2))
		copy(nb, b.buf[:b.bufLen])
		b.buf = nb
	}

	for {
		n, err := b.stream.Read(b.buf[b.bufLen:])
		if n > 0 {
			b.bufLen += n
			b.fileLen = b.bufLen
			return n
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF):
			return 0
		default:
			fatalf("%v", err)
		}
	}
}

// utf8Buffer decodes UTF-8 sequences of a Buffer into single characters.
type utf8Buffer struct {
	*Buffer
}

func newUTF8Buffer(b *Buffer) *utf8Buffer { return &utf8Buffer{b} }

// Read returns the next character or eofCh. Stray continuation bytes are
// skipped.
func (b *utf8Buffer) Read() int {
	ch := b.Buffer.Read()
	for ch >= 0x80 && ch&0xc0 != 0xc0 {
		ch = b.Buffer.Read()
	}
	switch {
	case ch < 0x80:
		return ch
	case ch&0xf8 == 0xf0: // 11110xxx 10xxxxxx 10xxxxxx 10xxxxxx
		return (ch&0x07)<<18 | b.cont()<<12 | b.cont()<<6 | b.cont()
	case ch&0xf0 == 0xe0: // 1110xxxx 10xxxxxx 10xxxxxx
		return (ch&0x0f)<<12 | b.cont()<<6 | b.cont()
	default: // 110xxxxx 10xxxxxx
		return (ch&0x1f)<<6 | b.cont()
	}
}

func (b *utf8Buffer) cont() int { return b.Buffer.Read() & 0x3f }

func (b *utf8Buffer) Peek() int {
	pos := b.Pos()
	c := b.Read()
	b.SetPos(pos)
	return c
}

func (b *utf8Buffer) String(beg, end int) string { return substring(b, beg, end) }

func substring(s source, beg, end int) string {
	pos := s.Pos()
	s.SetPos(beg)
	var r []rune
	for s.Pos() < end {
		c := s.Read()
		if c == eofCh {
			break
		}

		r = append(r, rune(c))
	}
	s.SetPos(pos)
	return string(r)
}
