package domain

// DownloadResult describes one attempt to fetch and persist an image.
type DownloadResult struct {
	URL        string
	Path       string
	StatusCode int
	Bytes      int64
	Err        error
}

func (r DownloadResult) OK() bool {
	return r.Err == nil
}

// GenerateResult is the outcome of a single generation call.
// URLs holds every returned image URL; only the first one is downloaded.
type GenerateResult struct {
	URLs     []string
	Download *DownloadResult
	Err      error
}

func (r GenerateResult) OK() bool {
	return r.Err == nil
}

// Empty reports whether no usable image URLs were produced.
func (r GenerateResult) Empty() bool {
	return len(r.URLs) == 0
}
