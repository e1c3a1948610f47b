package domain

import "slices"

const (
	DallE2Model = "dall-e-2"
	DallE3Model = "dall-e-3"
)

type ImageSize string

const (
	Size256x256   ImageSize = "256x256"
	Size512x512   ImageSize = "512x512"
	Size1024x1024 ImageSize = "1024x1024"
	Size1024x1792 ImageSize = "1024x1792"
	Size1792x1024 ImageSize = "1792x1024"
)

// SupportedImageSizes lists the sizes accepted by the DALL-E models.
var SupportedImageSizes = []ImageSize{
	Size256x256,
	Size512x512,
	Size1024x1024,
	Size1024x1792,
	Size1792x1024,
}

func (s ImageSize) String() string {
	return string(s)
}

// Known reports whether s is one of SupportedImageSizes. Unknown sizes are
// still sent to the API, which has the final word.
func (s ImageSize) Known() bool {
	return slices.Contains(SupportedImageSizes, s)
}
