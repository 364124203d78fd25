// Package wav reads and writes the RIFF/WAVE header of uncompressed PCM
// files so their sample data can be streamed as raw frames.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	FormatPCM        uint16 = 1
	FormatFloat      uint16 = 3
	FormatExtensible uint16 = 0xFFFE

	// HeaderSize is the length of the canonical header WriteHeader emits.
	HeaderSize = 44

	maxDataLen = 0xFFFFFFFF - (HeaderSize - 8)
)

var (
	// ErrNotWAV is returned when the input lacks a RIFF/WAVE signature.
	ErrNotWAV = errors.New("not a RIFF/WAVE file")
	// ErrUnsupported is returned for encodings other than integer or float PCM.
	ErrUnsupported = errors.New("unsupported WAVE encoding")
)

// Format describes the sample layout of a PCM stream.
type Format struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// FrameSize returns the number of bytes per frame across all channels.
func (f Format) FrameSize() int {
	return int(f.Channels) * ((int(f.BitsPerSample) + 7) / 8)
}

// FrameCount returns the number of whole frames held in n bytes.
func (f Format) FrameCount(n int64) int64 {
	size := int64(f.FrameSize())
	if size == 0 || n <= 0 {
		return 0
	}
	return n / size
}

// Validate reports whether the format can be streamed frame by frame.
func (f Format) Validate() error {
	switch f.AudioFormat {
	case FormatPCM, FormatFloat, FormatExtensible:
	default:
		return fmt.Errorf("%w: format tag %#x", ErrUnsupported, f.AudioFormat)
	}
	if f.Channels == 0 {
		return fmt.Errorf("%w: zero channels", ErrUnsupported)
	}
	if f.SampleRate == 0 {
		return fmt.Errorf("%w: zero sample rate", ErrUnsupported)
	}
	if f.BitsPerSample == 0 || f.BitsPerSample%8 != 0 {
		return fmt.Errorf("%w: %d bits per sample", ErrUnsupported, f.BitsPerSample)
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d bit", f.SampleRate, f.Channels, f.BitsPerSample)
}

// ReadHeader consumes r up to the start of the data chunk. It returns the
// format, the byte offset of the first sample, and the data chunk length.
// Chunks other than "fmt " and "data" are skipped.
func ReadHeader(r io.Reader) (Format, int64, int64, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return Format{}, 0, 0, fmt.Errorf("read riff header: %w", err)
	}
	if !bytes.Equal(riff[0:4], []byte("RIFF")) || !bytes.Equal(riff[8:12], []byte("WAVE")) {
		return Format{}, 0, 0, ErrNotWAV
	}

	offset := int64(len(riff))
	var (
		format  Format
		haveFmt bool
	)
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return Format{}, 0, 0, fmt.Errorf("read chunk header at %d: %w", offset, err)
		}
		offset += int64(len(hdr))
		id := string(hdr[0:4])
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch id {
		case "fmt ":
			if size < 16 {
				return Format{}, 0, 0, fmt.Errorf("%w: fmt chunk of %d bytes", ErrNotWAV, size)
			}
			var body [16]byte
			if _, err := io.ReadFull(r, body[:]); err != nil {
				return Format{}, 0, 0, fmt.Errorf("read fmt chunk: %w", err)
			}
			// Extension fields are not needed to stream frames.
			rest := size + size%2 - int64(len(body))
			if _, err := io.CopyN(io.Discard, r, rest); err != nil {
				return Format{}, 0, 0, fmt.Errorf("read fmt chunk: %w", err)
			}
			offset += int64(len(body)) + rest
			format = Format{
				AudioFormat:   binary.LittleEndian.Uint16(body[0:2]),
				Channels:      binary.LittleEndian.Uint16(body[2:4]),
				SampleRate:    binary.LittleEndian.Uint32(body[4:8]),
				BitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return Format{}, 0, 0, fmt.Errorf("%w: data chunk before fmt chunk", ErrNotWAV)
			}
			if err := format.Validate(); err != nil {
				return Format{}, 0, 0, err
			}
			return format, offset, size, nil
		default:
			skip := size + size%2
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return Format{}, 0, 0, fmt.Errorf("skip %q chunk: %w", id, err)
			}
			offset += skip
		}
	}
}

// WriteHeader emits a canonical 44-byte header for dataLen bytes of samples.
func WriteHeader(w io.Writer, f Format, dataLen int64) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if dataLen < 0 || dataLen > maxDataLen {
		return fmt.Errorf("data length %d out of range", dataLen)
	}
	frameSize := uint16(f.FrameSize())
	tag := f.AudioFormat
	if tag == FormatExtensible {
		tag = FormatPCM
	}

	var hdr [HeaderSize]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(dataLen+HeaderSize-8))
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)
	binary.LittleEndian.PutUint16(hdr[20:22], tag)
	binary.LittleEndian.PutUint16(hdr[22:24], f.Channels)
	binary.LittleEndian.PutUint32(hdr[24:28], f.SampleRate)
	binary.LittleEndian.PutUint32(hdr[28:32], f.SampleRate*uint32(frameSize))
	binary.LittleEndian.PutUint16(hdr[32:34], frameSize)
	binary.LittleEndian.PutUint16(hdr[34:36], f.BitsPerSample)
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], uint32(dataLen))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	return nil
}

// File is an opened WAV file positioned for frame access.
type File struct {
	Format Format
	// Data reads only the sample bytes and supports seeking.
	Data *io.SectionReader

	f *os.File
}

// Open parses the header at path. The data length is clamped to the bytes
// actually present, which covers streaming writers that leave it unset.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	format, offset, dataLen, err := ReadHeader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if avail := info.Size() - offset; dataLen > avail {
		dataLen = max(avail, 0)
	}
	return &File{
		Format: format,
		Data:   io.NewSectionReader(f, offset, dataLen),
		f:      f,
	}, nil
}

// Frames returns the number of whole frames in the data chunk.
func (w *File) Frames() int64 {
	return w.Format.FrameCount(w.Data.Size())
}

// Close releases the underlying file.
func (w *File) Close() error {
	return w.f.Close()
}
