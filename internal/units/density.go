package units

// Density is a linear pixel density: Count pixels per Length of physical
// distance. It converts a physical length to a pixel count for a given
// output size, e.g. 62mm of eye separation against a 14-inch display
// rendered at some pixel width.
type Density struct {
	Count  float64
	Length Length
}

// FromWidth builds the density implied by rendering a physical display
// of the given width at widthPixels.
func FromWidth(widthPixels float64, width Length) Density {
	return Density{Count: widthPixels, Length: width}
}

// PixelsFor converts a physical length to a pixel count at this density.
func (d Density) PixelsFor(l Length) float64 {
	if d.Length.Meters == 0 {
		return 0
	}
	return d.Count * (l.Meters / d.Length.Meters)
}
