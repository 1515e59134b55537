package imaging

import (
	"fmt"

	"github.com/anthonynsimon/bild/histogram"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// Entropy returns the Shannon entropy of the pooled histogram of every band.
// 8-bit bands use 256 bins, 16-bit bands 65536.
func (b *Backend) Entropy(in primitive.Image) (float64, error) {
	src, err := asImage(in)
	if err != nil {
		return 0, err
	}

	hists := make([][]int, 0, len(src.planes))
	for _, p := range src.planes {
		switch src.format {
		case primitive.FormatUchar:
			// A Gray plane is read as R=G=B=gray, so any colour bin will do.
			hists = append(hists, histogram.NewRGBAHistogram(p.u8).R.Bins)
		case primitive.FormatUshort:
			bins := make([]int, 1<<16)
			for i := 0; i < src.width*src.height; i++ {
				bins[int(p.at(i))]++
			}
			hists = append(hists, bins)
		default:
			return 0, fmt.Errorf("entropy of %s samples: %w", src.format, primitive.ErrBadArgument)
		}
	}
	return primitive.Entropy(hists...), nil
}
