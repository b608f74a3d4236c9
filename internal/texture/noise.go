package texture

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/mathutil"
	"github.com/wb4/sgcreate/internal/raster"
)

// AddPoissonNoise perturbs every pixel of img in place with Poisson
// noise: each channel value maps to a Poisson rate, and the channel
// is replaced by a draw from that distribution via a precomputed
// inverse CDF and scaled back by 1/amount, so the mean stays at the
// input value. Larger amounts mean finer quantization and subtler
// grain.
func AddPoissonNoise(img *raster.Image, amount float64, seed int64) {
	if amount <= 0 {
		return
	}
	r := mathutil.NewSeededRand(seed)
	cdfs := buildPoissonCDFs(amount)

	for i, p := range img.Pix {
		img.Pix[i] = colorx.Color{
			R: poissonSample(cdfs, p.RByte(), amount, r),
			G: poissonSample(cdfs, p.GByte(), amount, r),
			B: poissonSample(cdfs, p.BByte(), amount, r),
			A: p.A,
		}
	}
}

func poissonSample(cdfs [][]float64, channel uint8, amount float64, r *mathutil.SeededRand) float64 {
	cdf := cdfs[channel]
	u := r.Float64()
	k := sort.SearchFloat64s(cdf, u)
	sample := float64(k) * (255.0 / amount)
	if sample < 0 {
		sample = 0
	}
	if sample > 255 {
		sample = 255
	}
	return sample / 255.0
}

// buildPoissonCDFs precomputes, for each possible input byte channel
// value 0..255, the CDF of a Poisson distribution whose lambda is
// proportional to that channel value.
func buildPoissonCDFs(amount float64) [][]float64 {
	cdfs := make([][]float64, 256)

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int, 256)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for ch := range jobs {
				cdfs[ch] = poissonCDFForChannel(ch, amount)
			}
		}()
	}
	for ch := 0; ch < 256; ch++ {
		jobs <- ch
	}
	close(jobs)
	wg.Wait()

	return cdfs
}

func poissonCDFForChannel(ch int, amount float64) []float64 {
	lambda := (float64(ch) / 255.0) * amount
	if lambda <= 0 {
		return []float64{1.0}
	}

	cdf := make([]float64, 0, 32)
	p := math.Exp(-lambda)
	cum := p
	cdf = append(cdf, cum)

	upper := int(math.Ceil(lambda + 10*math.Sqrt(lambda) + 10))
	if upper < 32 {
		upper = 32
	}

	for k := 1; cum < 1-1e-12 && k <= upper; k++ {
		p = p * lambda / float64(k)
		cum += p
		if cum > 1 {
			cum = 1
		}
		cdf = append(cdf, cum)
	}

	return cdf
}
