package host

import (
	"bytes"
	"context"

	"github.com/fogleman/gg"
)

// SnapshotCapturer grabs a preview image for a version or working-file
// record. In a host session this would be a viewport grab; the card capturer
// renders a labeled placeholder instead.
type SnapshotCapturer interface {
	Capture(ctx context.Context, label string) ([]byte, error)
}

const (
	snapshotWidth  = 320
	snapshotHeight = 180
)

// CardCapturer renders a flat card with the record's label and returns it as
// a PNG blob.
type CardCapturer struct{}

func NewCardCapturer() *CardCapturer {
	return &CardCapturer{}
}

func (c *CardCapturer) Capture(ctx context.Context, label string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(snapshotWidth, snapshotHeight)
	dc.SetRGB(0.15, 0.16, 0.18)
	dc.Clear()

	dc.SetRGB(0.35, 0.55, 0.75)
	dc.DrawRectangle(0, float64(snapshotHeight)-6, float64(snapshotWidth), 6)
	dc.Fill()

	dc.SetRGB(0.9, 0.9, 0.9)
	dc.DrawStringAnchored(label, float64(snapshotWidth)/2, float64(snapshotHeight)/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
