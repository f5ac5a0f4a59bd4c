package workspace

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

/**************************************************************************************************
** rotatableExtensions covers every format the rotation pass can decode and re-encode in place.
** Wider than the stamping whitelist: sources sometimes arrive as BMP or TIFF scans even though
** only JPEG and PNG are stamped.
**************************************************************************************************/
var rotatableExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff"}

/**************************************************************************************************
** RemoveStamped deletes every previously produced stamped copy under the root, recursively.
** Only files carrying the stamped marker in their name are touched. A file that cannot be
** removed is logged and skipped; an unreadable directory is fatal.
**
** @param root - Folder tree to clean
** @param dryRun - When true, log what would be removed and delete nothing
** @param logger - Logger instance
** @return int - Number of files removed (or that would be removed)
** @return error - Walk failure
**************************************************************************************************/
func RemoveStamped(root string, dryRun bool, logger *logrus.Logger) (int, error) {
	removed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.Contains(strings.ToLower(d.Name()), utils.StampedMarker) {
			return nil
		}
		if dryRun {
			logger.Infof("Would remove stale copy: %s", path)
			removed++
			return nil
		}
		if err := os.Remove(path); err != nil {
			logger.Warnf("⚠️  Could not remove %s: %v", path, err)
			return nil
		}
		logger.Debugf("🗑️  Removed stale copy: %s", path)
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("could not clean %s: %w", root, err)
	}
	return removed, nil
}

/**************************************************************************************************
** RotateLandscape rewrites landscape photos in leaf directories as portrait, rotated a quarter
** turn clockwise, keeping each file's format. Only leaf directories are touched: folders with
** subfolders are structure, not photo sets. A photo that cannot be read or rewritten is logged
** and skipped.
**
** @param root - Folder tree to process
** @param dryRun - When true, log what would be rotated and rewrite nothing
** @param logger - Logger instance
** @return int - Number of photos rotated (or that would be rotated)
** @return error - Walk failure
**************************************************************************************************/
func RotateLandscape(root string, dryRun bool, logger *logrus.Logger) (int, error) {
	rotated := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				// Not a leaf; its subfolders get their own visit.
				return nil
			}
		}

		for _, entry := range entries {
			if !utils.Contains(rotatableExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
				continue
			}
			file := filepath.Join(path, entry.Name())
			done, err := rotateFile(file, dryRun, logger)
			if err != nil {
				logger.Warnf("⚠️  Could not rotate %s: %v", file, err)
				continue
			}
			if done {
				rotated++
			}
		}
		return nil
	})
	if err != nil {
		return rotated, fmt.Errorf("could not rotate under %s: %w", root, err)
	}
	return rotated, nil
}

/**************************************************************************************************
** rotateFile rotates one photo when it is landscape. Portrait and square photos are left
** untouched. The rotated copy is encoded to a temporary file next to the source and renamed
** over it only once complete, so neither a failed decode nor a failed encode damages the
** original.
**************************************************************************************************/
func rotateFile(path string, dryRun bool, logger *logrus.Logger) (bool, error) {
	source, err := os.Open(path)
	if err != nil {
		return false, err
	}
	decoded, _, err := image.Decode(source)
	_ = source.Close()
	if err != nil {
		return false, err
	}

	bounds := decoded.Bounds()
	if bounds.Dx() <= bounds.Dy() {
		return false, nil
	}
	if dryRun {
		logger.Infof("Would rotate: %s", path)
		return true, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".rotating-*")
	if err != nil {
		return false, err
	}
	// Keep the photo's own permissions; CreateTemp narrows them to 0600.
	if info, err := os.Stat(path); err == nil {
		_ = tmp.Chmod(info.Mode())
	}
	if err := encodeByExtension(tmp, rotateClockwise(decoded), filepath.Ext(path)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return false, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return false, err
	}

	logger.Debugf("🔄 Rotated: %s", path)
	return true, nil
}

/**************************************************************************************************
** rotateClockwise returns the image turned a quarter turn clockwise: the top-left source pixel
** becomes the top-right destination pixel.
**************************************************************************************************/
func rotateClockwise(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, height, width))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst.Set(height-1-y, x, src.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return dst
}

/**************************************************************************************************
** encodeByExtension writes the image in the format the file extension names. The extension was
** whitelisted before decoding, so an unknown one here is a programming error.
**************************************************************************************************/
func encodeByExtension(out *os.File, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(out, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(out, img, nil)
	case ".bmp":
		return bmp.Encode(out, img)
	case ".tiff":
		return tiff.Encode(out, img, nil)
	default:
		return fmt.Errorf("unsupported extension %q", ext)
	}
}
