// Package icnsenc implements a supplemental macOS cursor-theme export:
// bundling a cursor's largest rendered raster into a .icns file, for
// the "mousecape" theme packaging mode's icon preview asset. This is
// not one of the byte-exact encoders of spec §4.5/§4.6; it rides along
// the same rendered rasters to give the mac theme bundle an icon.
package icnsenc

import (
	"fmt"
	"image"
	"io"

	"github.com/jackmordaunt/icns/v2"
)

// Encode writes img to w as a .icns container. The caller is
// responsible for selecting the largest available raster for a
// cursor, since icns.Encode itself generates the smaller sizes by
// downscaling internally.
func Encode(w io.Writer, img image.Image) error {
	if err := icns.Encode(w, img); err != nil {
		return fmt.Errorf("icnsenc: %w", err)
	}
	return nil
}
