package domain

import "strings"

// ImageRequest is a single generation request sent to the remote API.
type ImageRequest struct {
	Prompt string
	Count  int
	Size   ImageSize
	Model  string
}

// NormalizeCount returns n, or 1 when n is not positive.
func NormalizeCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}
