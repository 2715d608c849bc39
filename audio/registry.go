// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

// Decoder constructs a runtime-typed signal from an encoded input.
type Decoder interface {
	Decode(r io.Reader) (TaggedSignal, error)
}

// Encoder writes a runtime-typed signal in an encoded form. w should be an
// io.WriteSeeker when the format needs to patch its header afterwards.
type Encoder interface {
	Encode(w io.Writer, src TaggedSignal) error
}

// FormatInfo is what a Registry knows about one container format.
type FormatInfo struct {
	Format     KnownFormat
	Extensions []string
	MIMETypes  []string
	Decoder    Decoder
	// Encoder is nil for decode-only formats.
	Encoder Encoder
}

// Registry resolves formats from file extensions and MIME types. It holds
// no global state; build one at startup and pass it to whoever needs it.
type Registry struct {
	formats map[KnownFormat]FormatInfo
	byExt   map[string]KnownFormat
	byMIME  map[string]KnownFormat

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[KnownFormat]FormatInfo),
		byExt:   make(map[string]KnownFormat),
		byMIME:  make(map[string]KnownFormat),
		mtx:     &sync.RWMutex{},
	}
}

// Register adds or replaces a format. Extensions are matched without the
// leading dot and case-insensitively, as are MIME types.
func (r *Registry) Register(info FormatInfo) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.formats[info.Format] = info

	for _, ext := range info.Extensions {
		r.byExt[normExt(ext)] = info.Format
	}

	for _, m := range info.MIMETypes {
		r.byMIME[strings.ToLower(m)] = info.Format
	}
}

// Get returns what is registered for f.
func (r *Registry) Get(f KnownFormat) (FormatInfo, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	info, ok := r.formats[f]
	if !ok {
		return FormatInfo{}, fmt.Errorf("%w: format %s is not registered", ErrNotFound, f)
	}

	return info, nil
}

// ByExtension resolves "wav", ".wav" or "WAV".
func (r *Registry) ByExtension(ext string) (KnownFormat, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	f, ok := r.byExt[normExt(ext)]
	if !ok {
		return 0, fmt.Errorf("%w: extension %q", ErrNotFound, ext)
	}

	return f, nil
}

// ByPath resolves the extension of a file path.
func (r *Registry) ByPath(path string) (KnownFormat, error) {
	return r.ByExtension(filepath.Ext(path))
}

// ByMIME resolves a MIME type, ignoring any parameters.
func (r *Registry) ByMIME(mime string) (KnownFormat, error) {
	base, _, _ := strings.Cut(mime, ";")

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	f, ok := r.byMIME[strings.ToLower(strings.TrimSpace(base))]
	if !ok {
		return 0, fmt.Errorf("%w: MIME type %q", ErrNotFound, mime)
	}

	return f, nil
}

// Formats lists the registered formats in KnownFormat order.
func (r *Registry) Formats() []FormatInfo {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]FormatInfo, 0, len(r.formats))
	for _, f := range KnownFormats {
		if info, ok := r.formats[f]; ok {
			out = append(out, info)
		}
	}

	return out
}

func normExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
