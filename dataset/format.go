package dataset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/ByJuanDiego/graphclust/codec"
)

const (
	// MagicNumber identifies graphclust dataset files (ASCII: "PGB0").
	MagicNumber = 0x50474230
	// Version is the current container format version.
	Version = 0x00010000
)

// Payload kinds.
const (
	KindGraphs    uint8 = 1
	KindCentroids uint8 = 2
	KindCache     uint8 = 3
)

// Compression schemes.
const (
	CompressionNone uint8 = 0
	CompressionZstd uint8 = 1
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported version")
	ErrKindMismatch   = errors.New("unexpected payload kind")
	ErrChecksum       = errors.New("payload checksum mismatch")
	ErrTruncated      = errors.New("truncated payload")
)

// fileHeader is the fixed 24-byte header at the start of every dataset
// file. The codec name follows the header, then the payload.
type fileHeader struct {
	Magic       uint32
	Version     uint32
	Kind        uint8
	Compression uint8
	CodecLen    uint16
	PayloadLen  uint64
	Checksum    uint32 // CRC32 (IEEE) of the stored payload bytes
}

// encode serializes v into a self-describing container of the given kind.
// The payload is codec-encoded, zstd-compressed and checksummed.
func encode(kind uint8, v any) ([]byte, error) {
	payload, err := codec.Default.Marshal(v)
	if err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	compressed := enc.EncodeAll(payload, nil)
	if err := enc.Close(); err != nil {
		return nil, err
	}

	name := codec.Default.Name()

	header := fileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Kind:        kind,
		Compression: CompressionZstd,
		CodecLen:    uint16(len(name)),
		PayloadLen:  uint64(len(compressed)),
		Checksum:    crc32.ChecksumIEEE(compressed),
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	buf.WriteString(name)
	buf.Write(compressed)

	return buf.Bytes(), nil
}

// decode validates the container and decodes its payload into v. The
// expected kind guards against loading e.g. a centroid list as a cache.
func decode(data []byte, kind uint8, v any) error {
	r := bytes.NewReader(data)

	var header fileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	if header.Magic != MagicNumber {
		return ErrInvalidMagic
	}
	if header.Version != Version {
		return fmt.Errorf("%w: 0x%08x", ErrInvalidVersion, header.Version)
	}
	if header.Kind != kind {
		return fmt.Errorf("%w: got %d, want %d", ErrKindMismatch, header.Kind, kind)
	}

	name := make([]byte, header.CodecLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return fmt.Errorf("read codec name: %w", err)
	}

	c, ok := codec.ByName(string(name))
	if !ok {
		return fmt.Errorf("unknown codec %q", name)
	}

	// Bound the allocation by what is actually left in the file; the
	// header length is untrusted input.
	if header.PayloadLen > uint64(r.Len()) {
		return fmt.Errorf("%w: header says %d bytes, %d remain", ErrTruncated, header.PayloadLen, r.Len())
	}

	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	if crc32.ChecksumIEEE(payload) != header.Checksum {
		return ErrChecksum
	}

	if header.Compression == CompressionZstd {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return err
		}
		defer dec.Close()

		payload, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return fmt.Errorf("decompress payload: %w", err)
		}
	}

	return c.Unmarshal(payload, v)
}
