package imagediff

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

/**************************************************************************************************
** Both photos of a pair are resampled onto this fixed grid before differencing. Comparing on a
** fixed grid bounds the cost per pair and makes photos of unequal resolution comparable.
**************************************************************************************************/
const compareSize = 256

/**************************************************************************************************
** Decoder turns a photo path into decoded pixels. The production implementation reads from
** disk; tests substitute an in-memory fake.
**************************************************************************************************/
type Decoder interface {
	Decode(path string) (image.Image, error)
}

/**************************************************************************************************
** FileDecoder decodes photos from the filesystem using the registered jpeg and png decoders.
**************************************************************************************************/
type FileDecoder struct{}

func (FileDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo %s: %w", path, err)
	}
	return img, nil
}

/**************************************************************************************************
** Estimator scores how visually different consecutive photos are. Scores are normalized to
** [0, 1]: identical frames score 0, a black frame against a white frame scores 1. A pair that
** cannot be decoded gets the configured fallback score so the photo still earns a plausible
** gap instead of starving the allocation.
**************************************************************************************************/
type Estimator struct {
	decoder  Decoder
	fallback float64
	workers  int
	logger   *logrus.Logger
}

/**************************************************************************************************
** NewEstimator creates an estimator.
**
** @param decoder - Photo decoder, FileDecoder in production
** @param fallback - Score substituted when a pair cannot be decoded
** @param workers - Max concurrent pair comparisons, values below 1 mean sequential
** @param logger - Logger instance for fallback warnings
** @return *Estimator - Configured estimator
**************************************************************************************************/
func NewEstimator(decoder Decoder, fallback float64, workers int, logger *logrus.Logger) *Estimator {
	if workers < 1 {
		workers = 1
	}
	return &Estimator{
		decoder:  decoder,
		fallback: fallback,
		workers:  workers,
		logger:   logger,
	}
}

/**************************************************************************************************
** Distance scores one pair of photos. The second return value reports whether the score was
** actually measured; false means a decode failed and the fallback score was substituted.
**
** @param pathA - First photo of the pair
** @param pathB - Second photo of the pair
** @return float64 - Dissimilarity in [0, 1]
** @return bool - True when measured, false when the fallback was used
**************************************************************************************************/
func (e *Estimator) Distance(pathA, pathB string) (float64, bool) {
	imgA, errA := e.decoder.Decode(pathA)
	imgB, errB := e.decoder.Decode(pathB)
	if errA != nil || errB != nil {
		err := errA
		if err == nil {
			err = errB
		}
		e.logger.Warnf("⚠️  Could not compare %s and %s, using default distance %.2f: %v", pathA, pathB, e.fallback, err)
		return e.fallback, false
	}

	return diffScore(resample(imgA), resample(imgB)), true
}

/**************************************************************************************************
** PairScores scores every consecutive pair of the listing. The result always has exactly
** len(paths)-1 entries in pair order; fewer than two paths yield no scores. Pairs are compared
** concurrently up to the configured width, and every result lands at its own pair index, so
** the output is identical to a sequential run.
**
** @param paths - Photo paths in sequence order
** @return []float64 - Score per consecutive pair
** @return []int - Pair indices that used the fallback score, for the run report
**************************************************************************************************/
func (e *Estimator) PairScores(paths []string) ([]float64, []int) {
	if len(paths) < 2 {
		return nil, nil
	}

	scores := make([]float64, len(paths)-1)
	measured := make([]bool, len(paths)-1)

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i := 0; i < len(paths)-1; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(pair int) {
			defer wg.Done()
			defer func() { <-sem }()
			scores[pair], measured[pair] = e.Distance(paths[pair], paths[pair+1])
		}(i)
	}
	wg.Wait()

	fallbacks := make([]int, 0)
	for i, ok := range measured {
		if !ok {
			fallbacks = append(fallbacks, i)
		}
	}
	return scores, fallbacks
}

/**************************************************************************************************
** resample scales a photo onto the fixed comparison grid.
**************************************************************************************************/
func resample(img image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, compareSize, compareSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

/**************************************************************************************************
** diffScore computes the mean absolute per-channel difference of two resampled photos,
** normalized so that all-black against all-white scores exactly 1. Alpha is ignored.
**************************************************************************************************/
func diffScore(a, b *image.RGBA) float64 {
	var total uint64
	for i := 0; i < len(a.Pix); i += 4 {
		total += absDiff(a.Pix[i], b.Pix[i])
		total += absDiff(a.Pix[i+1], b.Pix[i+1])
		total += absDiff(a.Pix[i+2], b.Pix[i+2])
	}
	maxDiff := float64(compareSize) * float64(compareSize) * 255 * 3
	return float64(total) / maxDiff
}

func absDiff(x, y uint8) uint64 {
	if x > y {
		return uint64(x - y)
	}
	return uint64(y - x)
}
