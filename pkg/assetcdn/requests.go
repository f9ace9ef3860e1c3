package assetcdn

import "io"

// Request/Response DTOs

// IngestAssetRequest contains parameters for ingesting a new asset
type IngestAssetRequest struct {
	Data      []byte
	Filename  string
	MimeType  string
	IsPrivate bool
}

// DownloadResult is the outcome of a conditional download. When NotModified
// is true no blob fetch occurred and Body is nil; headers carry only the
// validator. Otherwise Body streams the stored bytes and the caller owns
// closing it.
type DownloadResult struct {
	NotModified  bool
	Body         io.ReadCloser
	ETag         string
	CacheControl string
	MimeType     string
	SizeBytes    int64
	Filename     string
}
