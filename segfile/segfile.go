// Package segfile reads and writes segmentation artifacts: a small
// chunked container holding an image's dimensions, the k parameter it
// was segmented with, and the per-pixel label map.
//
// Layout is RIFF-flavored: a 4-byte magic, then a sequence of chunks,
// each a FourCC tag plus a little-endian payload size, payloads padded
// to even length. The label payload stores successive-label deltas as
// zigzag varints and compresses the result with snappy; canonical label
// maps are long runs of repeated roots, which delta coding turns into
// highly compressible zero runs.
package segfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/golang/snappy"
)

// Errors returned while parsing an artifact.
var (
	ErrBadMagic  = errors.New("segfile: bad magic")
	ErrTruncated = errors.New("segfile: truncated data")
	ErrCorrupt   = errors.New("segfile: corrupt chunk data")
)

// FourCC tags.
const (
	fourCCMagic  = 0x47455347 // "GSEG" little-endian
	fourCCHeader = 0x52444853 // "SHDR"
	fourCCLabels = 0x534c424c // "LBLS"
)

const (
	magicSize       = 4
	chunkHeaderSize = 8
	headerChunkSize = 16 // width u32 + height u32 + k f64
	maxChunkPayload = 1 << 30
)

// Segmentation is the persisted form of one segmentation run.
type Segmentation struct {
	Width, Height int
	K             float64
	Labels        []int32 // length Width*Height, canonical root-pixel labels
}

// Write serializes seg to w.
func Write(w io.Writer, seg *Segmentation) error {
	if seg == nil {
		return errors.New("segfile: nil segmentation")
	}
	if seg.Width <= 0 || seg.Height <= 0 {
		return fmt.Errorf("segfile: invalid dimensions %dx%d", seg.Width, seg.Height)
	}
	if len(seg.Labels) != seg.Width*seg.Height {
		return fmt.Errorf("segfile: label count %d does not match %dx%d", len(seg.Labels), seg.Width, seg.Height)
	}

	var magic [magicSize]byte
	binary.LittleEndian.PutUint32(magic[:], fourCCMagic)
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}

	var hdr [headerChunkSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(seg.Width))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(seg.Height))
	binary.LittleEndian.PutUint64(hdr[8:16], math.Float64bits(seg.K))
	if err := writeChunk(w, fourCCHeader, hdr[:]); err != nil {
		return err
	}

	return writeChunk(w, fourCCLabels, snappy.Encode(nil, encodeLabels(seg.Labels)))
}

// writeChunk emits one FourCC chunk, padding the payload to even length.
func writeChunk(w io.Writer, fourcc uint32, payload []byte) error {
	var hdr [chunkHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], fourcc)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if len(payload)&1 == 1 {
		if _, err := w.Write([]byte{0}); err != nil {
			return err
		}
	}
	return nil
}

// encodeLabels delta-codes the label stream as zigzag varints.
func encodeLabels(labels []int32) []byte {
	buf := make([]byte, 0, len(labels))
	prev := int64(0)
	for _, l := range labels {
		buf = binary.AppendVarint(buf, int64(l)-prev)
		prev = int64(l)
	}
	return buf
}

// Read parses a segmentation artifact from r.
func Read(r io.Reader) (*Segmentation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("segfile: reading data: %w", err)
	}
	if len(data) < magicSize {
		return nil, ErrTruncated
	}
	if binary.LittleEndian.Uint32(data[0:4]) != fourCCMagic {
		return nil, ErrBadMagic
	}
	data = data[magicSize:]

	seg := &Segmentation{}
	sawHeader := false
	sawLabels := false
	for len(data) > 0 {
		if len(data) < chunkHeaderSize {
			return nil, ErrTruncated
		}
		fourcc := binary.LittleEndian.Uint32(data[0:4])
		size := binary.LittleEndian.Uint32(data[4:8])
		if size > maxChunkPayload {
			return nil, ErrCorrupt
		}
		padded := int(size + size&1)
		if len(data) < chunkHeaderSize+padded {
			return nil, ErrTruncated
		}
		payload := data[chunkHeaderSize : chunkHeaderSize+int(size)]
		data = data[chunkHeaderSize+padded:]

		switch fourcc {
		case fourCCHeader:
			if len(payload) != headerChunkSize {
				return nil, ErrCorrupt
			}
			seg.Width = int(binary.LittleEndian.Uint32(payload[0:4]))
			seg.Height = int(binary.LittleEndian.Uint32(payload[4:8]))
			seg.K = math.Float64frombits(binary.LittleEndian.Uint64(payload[8:16]))
			if seg.Width <= 0 || seg.Height <= 0 {
				return nil, ErrCorrupt
			}
			sawHeader = true
		case fourCCLabels:
			if !sawHeader {
				return nil, ErrCorrupt
			}
			labels, err := decodeLabels(payload, seg.Width*seg.Height)
			if err != nil {
				return nil, err
			}
			seg.Labels = labels
			sawLabels = true
		default:
			// Unknown chunks are skipped for forward compatibility.
		}
	}
	if !sawHeader || !sawLabels {
		return nil, ErrTruncated
	}
	return seg, nil
}

// decodeLabels reverses encodeLabels, validating count and range.
func decodeLabels(payload []byte, n int) ([]int32, error) {
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, fmt.Errorf("segfile: label payload: %w", err)
	}
	labels := make([]int32, n)
	prev := int64(0)
	for i := 0; i < n; i++ {
		d, used := binary.Varint(raw)
		if used <= 0 {
			return nil, ErrCorrupt
		}
		raw = raw[used:]
		v := prev + d
		if v < 0 || v >= int64(n) {
			return nil, ErrCorrupt
		}
		labels[i] = int32(v)
		prev = v
	}
	if len(raw) != 0 {
		return nil, ErrCorrupt
	}
	return labels, nil
}
