package tusclient

import "time"

const (
	// SizeUnknown value of UploadInfo.TotalSize means that the server did not report Upload-Length, e.g. when the
	// upload was created with deferred length. In ServerInfo.MaxUploadSize it means that the server has no limit
	// or did not report it.
	SizeUnknown = -1
)

// UploadInfo is a snapshot of an upload state as the server reported it on inspection
type UploadInfo struct {
	BytesUploaded int64
	TotalSize     int64
	Metadata      map[string]string
	// Expires is set if the server supports "expiration" extension and sent Upload-Expires header
	Expires *time.Time
}
