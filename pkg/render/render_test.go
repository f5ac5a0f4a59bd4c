package render

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/************************************************************************************************
** Test helper functions
************************************************************************************************/

func testOverlay(t *testing.T) *Overlay {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	overlay, err := NewOverlay(logger)
	require.NoError(t, err)
	return overlay
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func recordFor(path string) utils.TStampRecord {
	return utils.TStampRecord{
		Photo:     utils.TPhoto{Path: path, Name: filepath.Base(path)},
		Timestamp: time.Date(2025, 5, 1, 13, 5, 7, 0, time.UTC),
		Location:  "АЗС № 4",
	}
}

// brightPixels counts pixels lighter than mid-gray inside the given region
func brightPixels(img image.Image, region image.Rectangle) int {
	count := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r > 0x8000 && g > 0x8000 && b > 0x8000 {
				count++
			}
		}
	}
	return count
}

/************************************************************************************************
** Test cases
************************************************************************************************/

func TestTargetPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "jpg source",
			path:     "/photos/1_котельная.jpg",
			expected: "/photos/1_котельная_stamped.png",
		},
		{
			name:     "png source keeps png",
			path:     "/photos/overview.png",
			expected: "/photos/overview_stamped.png",
		},
		{
			name:     "uppercase extension",
			path:     "/photos/IMG_0042.JPG",
			expected: "/photos/IMG_0042_stamped.png",
		},
		{
			name:     "no extension",
			path:     "/photos/snapshot",
			expected: "/photos/snapshot_stamped.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TargetPath(tt.path))
		})
	}
}

func TestOverlayRenderWritesStampedCopy(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "1_site.png")
	writePNG(t, source, 600, 600)

	overlay := testOverlay(t)
	err := overlay.Render(recordFor(source), []string{"01 мая. 2025 г. 13:05:07", "АЗС № 4"})
	require.NoError(t, err)

	target := filepath.Join(dir, "1_site_stamped.png")
	stamped := decodePNG(t, target)
	assert.Equal(t, 600, stamped.Bounds().Dx())
	assert.Equal(t, 600, stamped.Bounds().Dy())

	/******************************************************************************************
	** The source is solid black, so any light pixels in the top-right corner come from the
	** stamp text.
	******************************************************************************************/
	assert.Greater(t, brightPixels(stamped, image.Rect(300, 0, 600, 80)), 0)
	assert.Zero(t, brightPixels(stamped, image.Rect(0, 300, 600, 600)))
}

func TestOverlayRenderDownscales(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "wide.jpg")
	writeJPEG(t, source, 2500, 1000)

	overlay := testOverlay(t)
	require.NoError(t, overlay.Render(recordFor(source), []string{"01 мая. 2025 г. 13:05:07"}))

	stamped := decodePNG(t, filepath.Join(dir, "wide_stamped.png"))
	assert.Equal(t, 2000, stamped.Bounds().Dx())
	assert.Equal(t, 800, stamped.Bounds().Dy())
}

func TestOverlayRenderKeepsSmallSizes(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "small.png")
	writePNG(t, source, 320, 240)

	overlay := testOverlay(t)
	require.NoError(t, overlay.Render(recordFor(source), []string{"01 мая. 2025 г. 13:05:07"}))

	stamped := decodePNG(t, filepath.Join(dir, "small_stamped.png"))
	assert.Equal(t, 320, stamped.Bounds().Dx())
	assert.Equal(t, 240, stamped.Bounds().Dy())
}

func TestOverlayRenderOverwritesExistingCopy(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "1_site.png")
	writePNG(t, source, 200, 200)

	target := filepath.Join(dir, "1_site_stamped.png")
	require.NoError(t, os.WriteFile(target, []byte("stale junk"), 0o644))

	overlay := testOverlay(t)
	require.NoError(t, overlay.Render(recordFor(source), []string{"01 мая. 2025 г. 13:05:07"}))

	stamped := decodePNG(t, target)
	assert.Equal(t, 200, stamped.Bounds().Dx())
}

func TestOverlayRenderDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(source, []byte("not an image"), 0o644))

	overlay := testOverlay(t)
	err := overlay.Render(recordFor(source), []string{"line"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not decode")
	assert.NoFileExists(t, filepath.Join(dir, "broken_stamped.png"))
}

func TestOverlayRenderMissingFile(t *testing.T) {
	overlay := testOverlay(t)
	err := overlay.Render(recordFor("/nowhere/missing.jpg"), []string{"line"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open")
}

func TestNopRenderer(t *testing.T) {
	nop := &Nop{}
	rec := recordFor("/photos/1_site.jpg")

	require.NoError(t, nop.Render(rec, []string{"a", "b"}))
	require.NoError(t, nop.Render(rec, []string{"c"}))

	assert.Len(t, nop.Records, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, nop.Texts)
	assert.Equal(t, "/photos/1_site_stamped.png", nop.Target("/photos/1_site.jpg"))
	assert.NoFileExists(t, "/photos/1_site_stamped.png")
}
