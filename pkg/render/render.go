package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

/**************************************************************************************************
** Stamped copies are bounded to maxWidth x maxHeight, aspect preserved, never upscaled. The
** text block scales with the output image: font size is a fraction of the image height with
** a floor so tiny sources still get a legible stamp, padding keeps the block off the edges.
**************************************************************************************************/
const (
	maxWidth    = 2000
	maxHeight   = 2000
	heightFrac  = 0.031
	paddingFrac = 0.004
	minFontSize = 10
)

/**************************************************************************************************
** TargetPath derives the stamped copy's path for a source photo. The copy always sits next to
** the source and is always PNG, whatever the source format.
**
** @param path - Source photo path
** @return string - Path of the stamped copy
**************************************************************************************************/
func TargetPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + utils.StampedMarker + ".png"
}

/**************************************************************************************************
** Overlay burns the stamp text block into a downscaled copy of the photo. The source file is
** never touched; an existing stamped copy is overwritten.
**************************************************************************************************/
type Overlay struct {
	font   *sfnt.Font
	logger *logrus.Logger
}

/**************************************************************************************************
** NewOverlay creates the production renderer with the embedded bold Go font, which covers the
** Cyrillic range the default locale needs.
**
** @param logger - Logger instance
** @return *Overlay - Configured renderer
** @return error - Font parse failure
**************************************************************************************************/
func NewOverlay(logger *logrus.Logger) (*Overlay, error) {
	parsed, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("could not parse embedded font: %w", err)
	}
	return &Overlay{font: parsed, logger: logger}, nil
}

func (o *Overlay) Target(path string) string {
	return TargetPath(path)
}

/**************************************************************************************************
** Render produces the stamped copy for one record: decode, fit into the bounding box, draw the
** text lines top-down from the top-right corner, encode as PNG.
**
** @param rec - Record naming the source photo
** @param text - Lines to draw, top to bottom
** @return error - Decode, font or encode failure, wrapped with the affected path
**************************************************************************************************/
func (o *Overlay) Render(rec utils.TStampRecord, text []string) error {
	source, err := os.Open(rec.Photo.Path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", rec.Photo.Path, err)
	}
	defer source.Close()

	decoded, _, err := image.Decode(source)
	if err != nil {
		return fmt.Errorf("could not decode %s: %w", rec.Photo.Path, err)
	}

	canvas := fitToBounds(decoded)
	if err := o.drawText(canvas, text); err != nil {
		return fmt.Errorf("could not draw stamp on %s: %w", rec.Photo.Path, err)
	}

	target := o.Target(rec.Photo.Path)
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", target, err)
	}
	if err := png.Encode(out, canvas); err != nil {
		_ = out.Close()
		return fmt.Errorf("could not encode %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("could not close %s: %w", target, err)
	}

	o.logger.Debugf("🌄 Saved stamped copy: %s", target)
	return nil
}

/**************************************************************************************************
** fitToBounds copies the image onto a drawable canvas, downscaling to fit the bounding box
** when the source exceeds it. Images already within bounds keep their pixels untouched.
**
** @param img - Decoded source image
** @return *image.RGBA - Canvas the stamp is drawn on
**************************************************************************************************/
func fitToBounds(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		canvas := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Copy(canvas, image.Point{}, img, bounds, draw.Src, nil)
		return canvas
	}

	ratio := float64(maxWidth) / float64(width)
	if rh := float64(maxHeight) / float64(height); rh < ratio {
		ratio = rh
	}
	canvas := image.NewRGBA(image.Rect(0, 0, int(float64(width)*ratio), int(float64(height)*ratio)))
	draw.BiLinear.Scale(canvas, canvas.Bounds(), img, bounds, draw.Src, nil)
	return canvas
}

/**************************************************************************************************
** drawText writes the text block in white, right-aligned against the top-right corner. The
** first baseline sits one font size below the padding; each further line advances by 1.28
** font sizes.
**
** @param canvas - Canvas to draw on
** @param text - Lines to draw, top to bottom
** @return error - Face construction failure
**************************************************************************************************/
func (o *Overlay) drawText(canvas *image.RGBA, text []string) error {
	width := canvas.Bounds().Dx()
	height := canvas.Bounds().Dy()

	fontSize := int(float64(height) * heightFrac)
	if fontSize < minFontSize {
		fontSize = minFontSize
	}

	face, err := opentype.NewFace(o.font, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("could not build %dpx face: %w", fontSize, err)
	}
	defer face.Close()

	paddingX := int(float64(width) * paddingFrac)
	paddingY := int(float64(height) * paddingFrac)

	drawer := &font.Drawer{Dst: canvas, Src: image.White, Face: face}
	y := paddingY + fontSize
	for _, line := range text {
		lineWidth := font.MeasureString(face, line).Ceil()
		drawer.Dot = fixed.P(width-lineWidth-paddingX, y)
		drawer.DrawString(line)
		y += fontSize * 128 / 100
	}
	return nil
}

/**************************************************************************************************
** Nop is a renderer that records what it was asked to draw and writes nothing. Dry runs and
** the plan preview use it.
**************************************************************************************************/
type Nop struct {
	Records []utils.TStampRecord
	Texts   [][]string
}

func (n *Nop) Render(rec utils.TStampRecord, text []string) error {
	n.Records = append(n.Records, rec)
	n.Texts = append(n.Texts, text)
	return nil
}

func (n *Nop) Target(path string) string {
	return TargetPath(path)
}
