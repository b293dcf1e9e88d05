package statistic

import (
	"fmt"
	"shoutd/internal/statistic/interfaces"

	"github.com/klauspost/compress/zstd"
)

// maxSnapshotBytes bounds what a corrupt or hostile stats file can make the
// decoder allocate.
const maxSnapshotBytes = 256 << 20

// snapshotCompressor frames stats snapshots as single zstd frames. Snapshots
// are written by one goroutine at a time, so neither side needs concurrency.
type snapshotCompressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewSnapshotCompressor() (interfaces.CompressorInterface, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxSnapshotBytes),
	)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("snapshot decoder: %w", err)
	}
	return &snapshotCompressor{enc: enc, dec: dec}, nil
}

func (c *snapshotCompressor) Compress(snapshot []byte) ([]byte, error) {
	return c.enc.EncodeAll(snapshot, nil), nil
}

func (c *snapshotCompressor) Decompress(frame []byte) ([]byte, error) {
	snapshot, err := c.dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot frame: %w", err)
	}
	return snapshot, nil
}

func (c *snapshotCompressor) Close() {
	_ = c.enc.Close()
	c.dec.Close()
}
