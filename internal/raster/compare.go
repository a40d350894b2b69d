package raster

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// CompareResult describes how far a modified raster drifted from its cover.
type CompareResult struct {
	TotalPixels     int `json:"total_pixels"`
	PixelsChanged   int `json:"pixels_changed"`
	ChannelsChanged int `json:"channels_changed"`
	AlphaChanged    int `json:"alpha_changed"`
	MaxChannelDiff  int `json:"max_channel_diff"`

	// MeanDeltaE is the CIEDE2000 color difference averaged over every pixel,
	// MaxDeltaE the largest single-pixel difference. Values under roughly 0.01
	// on this 0-1 scale are not visible.
	MeanDeltaE float64 `json:"mean_delta_e"`
	MaxDeltaE  float64 `json:"max_delta_e"`
}

// Compare reports per-channel and perceptual differences between two rasters
// of the same size, typically a cover image and its encoded copy.
func Compare(a, b *Raster) (*CompareResult, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return nil, fmt.Errorf("raster sizes differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}

	res := &CompareResult{TotalPixels: a.Len()}
	if res.TotalPixels == 0 {
		return res, nil
	}

	var totalDelta float64
	for i, p := range a.Pix {
		q := b.Pix[i]
		if p == q {
			continue
		}
		res.PixelsChanged++

		for _, d := range []int{absDiff(p.R, q.R), absDiff(p.G, q.G), absDiff(p.B, q.B)} {
			if d > 0 {
				res.ChannelsChanged++
			}
			if d > res.MaxChannelDiff {
				res.MaxChannelDiff = d
			}
		}
		if p.A != q.A {
			res.AlphaChanged++
		}

		delta := toColorful(p).DistanceCIEDE2000(toColorful(q))
		totalDelta += delta
		if delta > res.MaxDeltaE {
			res.MaxDeltaE = delta
		}
	}

	res.MeanDeltaE = math.Round(totalDelta/float64(res.TotalPixels)*1e6) / 1e6
	res.MaxDeltaE = math.Round(res.MaxDeltaE*1e6) / 1e6
	return res, nil
}

func toColorful(p Pixel) colorful.Color {
	return colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
