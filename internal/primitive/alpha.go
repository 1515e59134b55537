package primitive

// HasAlpha reports whether the last band of img is an alpha band: two-band
// images (grey + alpha), four-band non-CMYK images and five-band CMYK images.
func HasAlpha(img Image) bool {
	bands := img.Bands()
	cmyk := img.Interpretation() == InterpretationCMYK
	return bands == 2 || (bands == 4 && !cmyk) || (bands == 5 && cmyk)
}
