// Package wavmerge validates and concatenates WAV-encoded audio buffers
// into a single output file.
package wavmerge

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ErrAudio indicates malformed or absent audio data.
var ErrAudio = errors.New("audio processing error")

// Save re-encodes a single WAV buffer to path using the buffer's own format.
func Save(buf []byte, path string) error {
	if len(buf) == 0 {
		return fmt.Errorf("%w: empty audio data", ErrAudio)
	}
	if !wav.NewDecoder(bytes.NewReader(buf)).IsValidFile() {
		return fmt.Errorf("%w: invalid wav data", ErrAudio)
	}
	return Merge([][]byte{buf}, path)
}

// Merge concatenates the ordered buffers into one WAV file at path. The
// output format descriptor is taken from the first buffer; every buffer's
// samples are appended in order, so the output duration is the sum of the
// input durations. Individual buffer formats are not re-validated against
// the first; the synthesis service is trusted to encode consistently.
//
// A failure partway through leaves a partially written file behind; callers
// must treat the output as invalid when an error is returned.
func Merge(bufs [][]byte, path string) error {
	if len(bufs) == 0 {
		return fmt.Errorf("%w: no audio segments to merge", ErrAudio)
	}

	first := wav.NewDecoder(bytes.NewReader(bufs[0]))
	if !first.IsValidFile() {
		return fmt.Errorf("%w: segment 0: invalid wav data", ErrAudio)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := wav.NewEncoder(out,
		int(first.SampleRate),
		int(first.BitDepth),
		int(first.NumChans),
		int(first.WavAudioFormat),
	)

	for i, buf := range bufs {
		if err := appendSamples(enc, buf, i); err != nil {
			out.Close()
			return err
		}
	}

	if err := enc.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return out.Close()
}

func appendSamples(enc *wav.Encoder, buf []byte, idx int) error {
	if len(buf) == 0 {
		return fmt.Errorf("%w: segment %d: empty audio data", ErrAudio, idx)
	}

	dec := wav.NewDecoder(bytes.NewReader(buf))
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("%w: segment %d: %v", ErrAudio, idx, err)
	}
	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("segment %d: write samples: %w", idx, err)
	}
	return nil
}
