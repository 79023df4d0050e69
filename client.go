package tusclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bdragon300/tusclient/checksum"
)

// DefaultChunkSize is the chunk size used by Client.Upload
const DefaultChunkSize = 5 * 1024 * 1024

// NewClient returns a Client working through transport
func NewClient(transport Transport) *Client {
	if transport == nil {
		panic("transport is nil")
	}
	return &Client{
		Transport:       transport,
		ProtocolVersion: "1.0.0",
		ChunkSize:       DefaultChunkSize,
	}
}

// Client performs operations with uploads on the server. Client keeps no state between calls, every method makes
// one or more requests and returns the result.
type Client struct {
	Transport Transport

	// ProtocolVersion is sent in Tus-Resumable header
	ProtocolVersion string

	// ChunkSize is the default chunk size for Upload and NewUploadStream
	ChunkSize int64

	// ChecksumAlgorithm, if set, makes every chunk carry Upload-Checksum header. Server must support
	// "checksum" extension and the algorithm.
	ChecksumAlgorithm checksum.Algorithm

	// OnProgress, if set, is copied to every UploadStream the client creates, so it is called after every
	// acknowledged chunk of Upload
	OnProgress func(offset, size int64)

	// Logger receives debug messages about requests. slog.Default() is used if nil.
	Logger *slog.Logger
}

// GetInfo inspects the upload at location. Any error status is reported as ErrNotFound.
func (c *Client) GetInfo(ctx context.Context, location string) (UploadInfo, error) {
	resp, err := c.tusRequest(ctx, &Request{Method: MethodHead, Location: location, Header: Header{}})
	if err != nil {
		return UploadInfo{}, err
	}
	return parseUploadInfo(resp)
}

// GetServerInfo requests the server capabilities. location is usually the upload creation endpoint.
func (c *Client) GetServerInfo(ctx context.Context, location string) (ServerInfo, error) {
	resp, err := c.tusRequest(ctx, &Request{Method: MethodOptions, Location: location, Header: Header{}})
	if err != nil {
		return ServerInfo{}, err
	}
	return parseServerInfo(resp)
}

// Create creates an upload with totalSize bytes on the endpoint and returns the new upload location
func (c *Client) Create(ctx context.Context, location string, totalSize int64) (string, error) {
	return c.CreateWithMetadata(ctx, location, totalSize, nil)
}

// CreateWithMetadata creates an upload the same way as Create and attaches metadata to it
func (c *Client) CreateWithMetadata(ctx context.Context, location string, totalSize int64, metadata map[string]string) (string, error) {
	if totalSize < 0 {
		return "", &ConfigError{Param: "upload size", Reason: fmt.Sprintf("must be non-negative, got %d", totalSize)}
	}

	req := &Request{Method: MethodPost, Location: location, Header: Header{}}
	req.Header.Set("Upload-Length", strconv.FormatInt(totalSize, 10))
	if len(metadata) > 0 {
		meta, err := EncodeMetadata(metadata)
		if err != nil {
			return "", err
		}
		req.Header.Set("Upload-Metadata", meta)
	}

	resp, err := c.tusRequest(ctx, req)
	if err != nil {
		return "", err
	}
	return parseCreated(resp)
}

// Upload transfers src to the upload at location with the client's chunk size. See UploadWithChunkSize.
func (c *Client) Upload(ctx context.Context, location string, src io.ReadSeeker) error {
	return c.UploadWithChunkSize(ctx, location, src, c.ChunkSize)
}

// UploadWithChunkSize inspects the upload, seeks src to the offset the server already has and uploads the rest
// of src in chunks of chunkSize bytes. If the transfer breaks, calling it again resumes the upload.
func (c *Client) UploadWithChunkSize(ctx context.Context, location string, src io.ReadSeeker, chunkSize int64) error {
	if src == nil {
		panic("src is nil")
	}
	if chunkSize <= 0 {
		return &ConfigError{Param: "chunk size", Reason: fmt.Sprintf("must be positive, got %d", chunkSize)}
	}

	info, err := c.GetInfo(ctx, location)
	if err != nil {
		return err
	}
	if info.TotalSize == SizeUnknown {
		return fmt.Errorf("upload %s: %w", location, ErrUnknownSize)
	}
	if _, err = src.Seek(info.BytesUploaded, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Err: err}
	}

	s := NewUploadStream(c, location, info.BytesUploaded, info.TotalSize).WithContext(ctx)
	s.ChunkSize = chunkSize
	_, err = s.ReadFrom(src)
	return err
}

// Delete terminates the upload at location. Server must support "termination" extension.
func (c *Client) Delete(ctx context.Context, location string) error {
	resp, err := c.tusRequest(ctx, &Request{Method: MethodDelete, Location: location, Header: Header{}})
	if err != nil {
		return err
	}
	return parseDeleted(resp)
}

func (c *Client) tusRequest(ctx context.Context, req *Request) (*Response, error) {
	if req.Method != MethodOptions && req.Header.Get("Tus-Resumable") == "" {
		req.Header.Set("Tus-Resumable", c.ProtocolVersion)
	}

	resp, err := c.Transport.RoundTrip(ctx, req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Err: err}
	}
	// Transports may return header names in any case
	h := make(Header, len(resp.Header))
	for k, v := range resp.Header {
		h.Set(k, v)
	}
	resp.Header = h
	c.logger().Debug("tus request", "method", req.Method, "location", req.Location, "status", resp.StatusCode)

	// Inspection reports every failure as ErrNotFound, so its error responses are not checked here
	if req.Method == MethodHead && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return resp, nil
	}
	if resp.StatusCode == http.StatusPreconditionFailed {
		return nil, fmt.Errorf(
			"request protocol version %q, server supported versions %q: %w: %w",
			c.ProtocolVersion, resp.Header.Get("Tus-Version"), ErrProtocol, &ServerError{StatusCode: resp.StatusCode},
		)
	}
	if v := resp.Header.Get("Tus-Resumable"); v != "" && v != c.ProtocolVersion {
		return nil, fmt.Errorf("server response protocol version %q, requested version %q: %w", v, c.ProtocolVersion, ErrProtocol)
	}
	return resp, nil
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
