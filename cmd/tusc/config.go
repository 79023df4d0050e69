package main

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/bdragon300/tusclient"
	"github.com/bdragon300/tusclient/checksum"
	"github.com/bdragon300/tusclient/httptransport"
	"github.com/dustin/go-humanize"
)

var (
	ErrNoEndpoint       = errors.New("endpoint is required")
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
)

// Config is the resolved tusc configuration: flags over env over config file
type Config struct {
	Endpoint  string
	ChunkSize int64
	Checksum  checksum.Algorithm
	Verbose   bool
}

func parseConfig(endpoint, chunkSize, checksumName string, verbose bool) (*Config, error) {
	cfg := &Config{Endpoint: endpoint, Verbose: verbose}

	size, err := humanize.ParseBytes(chunkSize)
	if err != nil {
		return nil, fmt.Errorf("chunk size %q: %w", chunkSize, err)
	}
	cfg.ChunkSize = int64(size)

	if checksumName != "" {
		algo, ok := checksum.GetAlgorithm(checksumName)
		if !ok {
			return nil, fmt.Errorf("checksum algorithm %q is not supported", checksumName)
		}
		cfg.Checksum = algo
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrNoEndpoint
	}
	if _, err := url.ParseRequestURI(c.Endpoint); err != nil {
		return fmt.Errorf("endpoint %q: %w", c.Endpoint, err)
	}
	if c.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	return nil
}

func (c *Config) NewClient() (*tusclient.Client, error) {
	transport, err := httptransport.NewFromString(c.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	cl := tusclient.NewClient(transport)
	cl.ChunkSize = c.ChunkSize
	cl.ChecksumAlgorithm = c.Checksum
	return cl, nil
}
