package tusclient

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/bdragon300/tusclient/checksum"
)

// State of UploadStream transfer
type State uint8

const (
	StateCreated State = iota
	StateTransferring
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateTransferring:
		return "transferring"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// UploadStream transfers data to an existing upload chunk by chunk. Every chunk is sent only after the previous one
// has been acknowledged by the server, the acknowledged offset must be exactly the offset of the previous chunk plus
// its length.
//
// UploadStream is a single-use object: after ReadFrom has finished, successfully or not, the stream cannot transfer
// anymore. Instead of ReadFrom, data may be pushed with a series of Write calls; the two cannot be mixed on one
// stream. To resume an interrupted upload, inspect it with Client.GetInfo, seek the source to the returned offset
// and create a new UploadStream.
type UploadStream struct {
	// ChunkSize is the maximum size of data sent in one request. Also it is the size of buffer the stream allocates.
	ChunkSize int64

	// OnProgress is called after every acknowledged chunk with the new offset
	OnProgress func(offset, size int64)

	location string
	offset   int64
	size     int64
	state    State

	client *Client
	ctx    context.Context
}

// NewUploadStream returns a stream that uploads the data to location starting from offset. The source reader passed
// to ReadFrom must be positioned at the same offset. size is the total upload size.
func NewUploadStream(client *Client, location string, offset, size int64) *UploadStream {
	if client == nil {
		panic("client is nil")
	}
	return &UploadStream{
		ChunkSize:  client.ChunkSize,
		OnProgress: client.OnProgress,
		location:   location,
		offset:     offset,
		size:       size,
		client:     client,
		ctx:        context.Background(),
	}
}

// WithContext sets the context used for requests. Cancelling it stops the transfer before the next chunk.
func (us *UploadStream) WithContext(ctx context.Context) *UploadStream {
	us.ctx = ctx
	return us
}

// ReadFrom reads data from r and uploads it until the offset reaches the upload size. Returns the number of bytes
// acknowledged by the server.
func (us *UploadStream) ReadFrom(r io.Reader) (n int64, err error) {
	if us.state != StateCreated {
		return 0, &ConfigError{Param: "upload stream", Reason: "transfer is already " + us.state.String()}
	}
	if err = us.validate(); err != nil {
		return 0, err
	}

	us.state = StateTransferring
	defer func() {
		if err != nil {
			us.state = StateFailed
		}
	}()

	// The only buffer for the whole transfer
	buf := make([]byte, min(us.ChunkSize, us.size-us.offset))
	for us.offset < us.size {
		if err = us.ctx.Err(); err != nil {
			return
		}

		want := min(int64(len(buf)), us.size-us.offset)
		read, rerr := io.ReadFull(r, buf[:want])
		if read == 0 || (rerr != nil && rerr != io.ErrUnexpectedEOF) {
			if rerr == nil || rerr == io.EOF {
				rerr = io.ErrUnexpectedEOF
			}
			err = &IOError{Op: "read", Err: fmt.Errorf("%d bytes left to upload: %w", us.size-us.offset, rerr)}
			return
		}
		// A short read is sent as is, the next iteration will report the missing data

		if err = us.uploadChunk(buf[:read]); err != nil {
			return
		}
		n += int64(read)
	}

	us.state = StateCompleted
	return
}

// Write uploads p in chunks of at most ChunkSize bytes, sending data directly from p. Write may be called
// several times, the transfer completes when the offset reaches the upload size. Data that does not fit the
// upload size is rejected before sending anything.
func (us *UploadStream) Write(p []byte) (n int, err error) {
	switch us.state {
	case StateCreated:
		if err = us.validate(); err != nil {
			return 0, err
		}
	case StateTransferring:
	default:
		return 0, &ConfigError{Param: "upload stream", Reason: "transfer is already " + us.state.String()}
	}
	if left := us.size - us.offset; int64(len(p)) > left {
		return 0, &ConfigError{Param: "data", Reason: fmt.Sprintf("%d bytes exceed %d bytes left to upload", len(p), left)}
	}

	us.state = StateTransferring
	defer func() {
		if err != nil {
			us.state = StateFailed
		}
	}()

	for len(p) > 0 {
		if err = us.ctx.Err(); err != nil {
			return
		}
		chunk := p[:min(int64(len(p)), us.ChunkSize)]
		if err = us.uploadChunk(chunk); err != nil {
			return
		}
		n += len(chunk)
		p = p[len(chunk):]
	}

	if us.offset == us.size {
		us.state = StateCompleted
	}
	return
}

// Offset returns the last offset acknowledged by the server
func (us *UploadStream) Offset() int64 {
	return us.offset
}

// Len returns the upload size
func (us *UploadStream) Len() int64 {
	return us.size
}

func (us *UploadStream) State() State {
	return us.state
}

func (us *UploadStream) validate() error {
	switch {
	case us.ChunkSize <= 0:
		return &ConfigError{Param: "chunk size", Reason: fmt.Sprintf("must be positive, got %d", us.ChunkSize)}
	case us.size < 0:
		return &ConfigError{Param: "upload size", Reason: fmt.Sprintf("must be known and non-negative, got %d", us.size)}
	case us.offset < 0 || us.offset > us.size:
		return &ConfigError{Param: "offset", Reason: fmt.Sprintf("%d is out of upload size %d", us.offset, us.size)}
	}
	if algo := us.client.ChecksumAlgorithm; algo != "" {
		if _, ok := checksum.Algorithms[algo]; !ok {
			return &ConfigError{Param: "checksum algorithm", Reason: fmt.Sprintf("%q is not supported", algo)}
		}
	}
	return nil
}

func (us *UploadStream) uploadChunk(chunk []byte) error {
	req := &Request{
		Method:   MethodPatch,
		Location: us.location,
		Header:   Header{},
		Body:     chunk,
	}
	req.Header.Set("Content-Type", "application/offset+octet-stream")
	req.Header.Set("Upload-Offset", strconv.FormatInt(us.offset, 10))
	if algo := us.client.ChecksumAlgorithm; algo != "" {
		sum, err := checksum.Header(algo, chunk)
		if err != nil {
			return &ConfigError{Param: "checksum algorithm", Reason: err.Error()}
		}
		req.Header.Set("Upload-Checksum", sum)
	}

	resp, err := us.client.tusRequest(us.ctx, req)
	if err != nil {
		return err
	}
	remoteOffset, err := parseTransferred(resp)
	if err != nil {
		return err
	}
	if expected := us.offset + int64(len(chunk)); remoteOffset != expected {
		return &OffsetMismatchError{Expected: expected, Actual: remoteOffset}
	}

	us.offset = remoteOffset
	us.client.logger().Debug("chunk uploaded", "location", us.location, "offset", us.offset, "size", us.size)
	if us.OnProgress != nil {
		us.OnProgress(us.offset, us.size)
	}
	return nil
}
