// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test doubles shared by the package tests.
package audiotest

import (
	"errors"
	"fmt"

	"github.com/ik5/phonic/audio"
)

// Track is a finite writable signal that records what it receives. It starts
// at frame Start and accepts data until frame Length.
type Track[T audio.Sample] struct {
	spec   audio.SignalSpec
	length uint64
	pos    uint64

	// MaxFrames caps how many frames a single write accepts, 0 means no cap.
	MaxFrames uint64
	// Err, when set, is returned by the next write instead of writing.
	Err error
	// Written holds every sample received, starting at the start frame.
	Written []T
	// Calls counts WriteSamples invocations.
	Calls int
}

// NewTrack creates a track of length frames positioned at start.
func NewTrack[T audio.Sample](spec audio.SignalSpec, start, length uint64) *Track[T] {
	return &Track[T]{spec: spec, pos: start, length: length}
}

func (t *Track[T]) Spec() audio.SignalSpec { return t.spec }
func (t *Track[T]) Pos() uint64            { return t.pos }
func (t *Track[T]) Len() uint64            { return t.length }
func (t *Track[T]) Flush() error           { return nil }

func (t *Track[T]) WriteSamples(buf []T) (int, error) {
	t.Calls++

	if t.Err != nil {
		err := t.Err
		t.Err = nil

		return 0, err
	}

	ch := uint64(t.spec.Channels.Count)
	frames := min(uint64(len(buf))/ch, t.length-t.pos)

	if t.MaxFrames > 0 {
		frames = min(frames, t.MaxFrames)
	}

	n := int(frames * ch)
	t.Written = append(t.Written, buf[:n]...)
	t.pos += frames

	return n, nil
}

// Flaky wraps a reader and fails the first calls with the given transient
// errors before delegating. It counts how often it was asked to block.
type Flaky[T audio.Sample] struct {
	audio.Reader[T]

	Errs   []error
	Blocks int
}

func (f *Flaky[T]) ReadSamples(buf []T) (int, error) {
	if len(f.Errs) > 0 {
		err := f.Errs[0]
		f.Errs = f.Errs[1:]

		return 0, err
	}

	return f.Reader.ReadSamples(buf)
}

func (f *Flaky[T]) Block() { f.Blocks++ }

// ByteStream is an in-memory StreamReader/StreamWriter that moves at most
// Chunk bytes per call, to exercise partial sample handling.
type ByteStream[C audio.CodecTag] struct {
	spec  audio.StreamSpec[C]
	Data  []byte
	Chunk int
	off   int
}

// NewByteStream creates a stream over data.
func NewByteStream[C audio.CodecTag](spec audio.StreamSpec[C], data []byte, chunk int) *ByteStream[C] {
	return &ByteStream[C]{spec: spec, Data: data, Chunk: chunk}
}

func (s *ByteStream[C]) StreamSpec() audio.StreamSpec[C] { return s.spec }
func (s *ByteStream[C]) Pos() uint64                     { return uint64(s.off) }
func (s *ByteStream[C]) Len() uint64                     { return uint64(len(s.Data)) }
func (s *ByteStream[C]) Flush() error                    { return nil }

func (s *ByteStream[C]) Read(buf []byte) (int, error) {
	n := s.limit(len(buf))
	n = copy(buf[:n], s.Data[s.off:])
	s.off += n

	return n, nil
}

func (s *ByteStream[C]) Write(buf []byte) (int, error) {
	n := len(buf)
	if s.Chunk > 0 {
		n = min(n, s.Chunk)
	}

	s.Data = append(s.Data, buf[:n]...)
	s.off += n

	return n, nil
}

func (s *ByteStream[C]) Seek(offset int64) error {
	target := int64(s.off) + offset
	if target < 0 || target > int64(len(s.Data)) {
		return fmt.Errorf("%w: seek to byte %d", audio.ErrUnsupported, target)
	}

	s.off = int(target)

	return nil
}

func (s *ByteStream[C]) limit(n int) int {
	if s.Chunk > 0 {
		n = min(n, s.Chunk)
	}

	return min(n, len(s.Data)-s.off)
}

// ErrBoom is a non-transient failure for tests.
var ErrBoom = errors.New("boom")
