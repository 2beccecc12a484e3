package preview

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// WriteFrame encodes one frame to outDir as either WebP or TGA, creating
// the directory on demand. Returns the written path.
func WriteFrame(outDir string, frameNo int, img *image.NRGBA, format string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("preview: mkdir %s: %w", outDir, err)
	}

	path := filepath.Join(outDir, fmt.Sprintf("frame_%04d.%s", frameNo, format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "tga":
		err = tga.Encode(f, img)
	default:
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return "", fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return path, nil
}
