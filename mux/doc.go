// SPDX-License-Identifier: EPL-2.0

// Package mux fans one interleaved write out to several signals that sit at
// different frame positions, such as tracks of a timeline that start at
// different times.
//
// A Bus keeps a PosQueue of its tracks ordered by position, built once from
// their starting positions. The first write treats the first sample of the
// caller buffer as the frame of the track that is furthest behind; later
// writes continue at Bus.Pos. Every track gets the part of the buffer
// starting at its own position:
//
//	a := ... // at frame 0
//	b := ... // at frame 20
//	bus, _ := mux.NewBus[float32]([]audio.Writer[float32]{a, b})
//	n, err := bus.WriteSamples(buf) // a gets buf, b gets buf[20*ch:]
//
// The count a write returns is the part of buf every written track has
// consumed, so it never over-reports for the slowest track.
package mux
