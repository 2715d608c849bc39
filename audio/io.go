// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

// ReadExact fills buf completely. ErrInterrupted is retried immediately,
// ErrNotReady blocks (when r is Blocking) and retries, and an exhausted
// signal before buf is full yields ErrEndOfStream.
func ReadExact[T Sample](r Reader[T], buf []T) error {
	return exact(r, r.ReadSamples, buf)
}

// WriteExact writes all of buf with the same retry policy as ReadExact.
func WriteExact[T Sample](w Writer[T], buf []T) error {
	return exact(w, w.WriteSamples, buf)
}

// ReadExactBytes is ReadExact for streams.
func ReadExactBytes[C CodecTag](r StreamReader[C], buf []byte) error {
	return exact(r, r.Read, buf)
}

// WriteExactBytes is WriteExact for streams.
func WriteExactBytes[C CodecTag](w StreamWriter[C], buf []byte) error {
	return exact(w, w.Write, buf)
}

func exact[E any](v any, op func([]E) (int, error), buf []E) error {
	for len(buf) > 0 {
		n, err := retry(v, func() (int, error) { return op(buf) })
		if err != nil {
			return err
		}

		if n == 0 {
			return fmt.Errorf("%w: %d items left", ErrEndOfStream, len(buf))
		}

		buf = buf[n:]
	}

	return nil
}

// retry runs op until it returns something other than a transient error.
func retry(v any, op func() (int, error)) (int, error) {
	for {
		n, err := op()

		switch {
		case errors.Is(err, ErrInterrupted):
			continue
		case errors.Is(err, ErrNotReady):
			b, ok := BlockingOf(v)
			if !ok {
				return n, err
			}

			b.Block()

			continue
		}

		return n, err
	}
}

// Copy reads src until it is exhausted and writes everything to dst using
// buf as scratch space, then flushes dst. buf length is trimmed to whole
// frames. It returns the number of frames copied.
func Copy[T Sample](dst Writer[T], src Reader[T], buf []T) (uint64, error) {
	if err := sameSpec(dst.Spec(), src.Spec()); err != nil {
		return 0, err
	}

	ch := int(src.Spec().Channels.Count)

	buf = buf[:len(buf)-len(buf)%ch]
	if len(buf) == 0 {
		return 0, fmt.Errorf("%w: copy buffer smaller than one frame", ErrUnsupported)
	}

	var frames uint64

	for {
		n, err := retry(src, func() (int, error) { return src.ReadSamples(buf) })
		if err != nil {
			return frames, err
		}

		if n == 0 {
			break
		}

		if err := WriteExact(dst, buf[:n]); err != nil {
			return frames, err
		}

		frames += uint64(n / ch)
	}

	return frames, dst.Flush()
}

// CopyN copies exactly n frames from src to dst.
func CopyN[T Sample](dst Writer[T], src Reader[T], n uint64, buf []T) error {
	if err := sameSpec(dst.Spec(), src.Spec()); err != nil {
		return err
	}

	ch := int(src.Spec().Channels.Count)

	buf = buf[:len(buf)-len(buf)%ch]
	if len(buf) == 0 {
		return fmt.Errorf("%w: copy buffer smaller than one frame", ErrUnsupported)
	}

	for n > 0 {
		chunk := buf[:min(uint64(len(buf)), n*uint64(ch))]
		if err := ReadExact(src, chunk); err != nil {
			return err
		}

		if err := WriteExact(dst, chunk); err != nil {
			return err
		}

		n -= uint64(len(chunk) / ch)
	}

	return nil
}

// ReadAll reads src until exhaustion.
func ReadAll[T Sample](src Reader[T]) ([]T, error) {
	var out []T

	buf := make([]T, src.Spec().Samples(4096))

	for {
		n, err := retry(src, func() (int, error) { return src.ReadSamples(buf) })
		if err != nil {
			return out, err
		}

		if n == 0 {
			return out, nil
		}

		out = append(out, buf[:n]...)
	}
}

func sameSpec(a, b SignalSpec) error {
	if a != b {
		return fmt.Errorf("%w: %s vs %s", ErrSignalMismatch, a, b)
	}

	if a.Channels.Count == 0 {
		return fmt.Errorf("%w: zero channels", ErrUnsupported)
	}

	return nil
}
