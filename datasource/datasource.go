// Package datasource opens the pipeline's inputs, wherever they live. A name is a local path,
// either absolute or relative to the data dir, or a gs://bucket/object URL; and if the data
// dir itself is a gs:// URL, relative names are objects under it. Files ending in .gz or .zst
// are decompressed as they are read; nothing is written back to disk.
package datasource

import(
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"google.golang.org/api/option"
)

var ErrMissingFile = errors.New("missing input file")

const gcsPrefix = "gs://"

type Opener struct {
	DataDir         string // local dir, or gs://bucket/prefix
	CredentialsFile string // optional; service account JSON for GCS

	mu     sync.Mutex
	client *storage.Client
}

func New(dataDir, credentialsFile string) *Opener {
	return &Opener{DataDir:dataDir, CredentialsFile:credentialsFile}
}

// {{{ o.Resolve

// Resolve turns a name into the full local path or gs:// URL it refers to.
func (o *Opener)Resolve(name string) string {
	if strings.HasPrefix(name, gcsPrefix) || filepath.IsAbs(name) || o.DataDir == "" {
		return name
	}
	if strings.HasPrefix(o.DataDir, gcsPrefix) {
		return gcsPrefix + path.Join(strings.TrimPrefix(o.DataDir, gcsPrefix), name)
	}
	return filepath.Join(o.DataDir, name)
}

// }}}
// {{{ splitGCS

func splitGCS(url string) (bucket, object string, err error) {
	bits := strings.SplitN(strings.TrimPrefix(url, gcsPrefix), "/", 2)
	if len(bits) != 2 || bits[0] == "" || bits[1] == "" {
		return "","", fmt.Errorf("bad GCS url %q", url)
	}
	return bits[0], bits[1], nil
}

// }}}
// {{{ o.gcsClient

func (o *Opener)gcsClient(ctx context.Context) (*storage.Client, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.client != nil { return o.client, nil }

	opts := []option.ClientOption{}
	if o.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	client,err := storage.NewClient(ctx, opts...)
	if err != nil { return nil, fmt.Errorf("creating storage client: %w", err) }
	o.client = client
	return client,nil
}

// }}}
// {{{ o.OpenRaw

// OpenRaw returns the bytes as stored, with no decompression.
func (o *Opener)OpenRaw(ctx context.Context, name string) (io.ReadCloser, error) {
	full := o.Resolve(name)

	if !strings.HasPrefix(full, gcsPrefix) {
		f,err := os.Open(full)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, full)
		} else if err != nil {
			return nil, fmt.Errorf("open %s: %w", full, err)
		}
		return f,nil
	}

	bucket,object,err := splitGCS(full)
	if err != nil { return nil,err }
	client,err := o.gcsClient(ctx)
	if err != nil { return nil,err }

	rdr,err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, full)
	} else if err != nil {
		return nil, fmt.Errorf("GCS-Open %s: %w", full, err)
	}
	return rdr,nil
}

// }}}
// {{{ o.Open

// Open returns the decompressed contents. An empty .gz file reads as empty, rather than as
// a gzip header error.
func (o *Opener)Open(ctx context.Context, name string) (io.ReadCloser, error) {
	raw,err := o.OpenRaw(ctx, name)
	if err != nil { return nil,err }

	switch {
	case strings.HasSuffix(name, ".gz"):
		gzRdr,err := gzip.NewReader(raw)
		if err == io.EOF {
			raw.Close()
			return io.NopCloser(strings.NewReader("")), nil
		} else if err != nil {
			raw.Close()
			return nil, fmt.Errorf("gzopen %s: %w", name, err)
		}
		return &stackedReadCloser{Reader:gzRdr, closers:[]io.Closer{gzRdr, raw}}, nil

	case strings.HasSuffix(name, ".zst"):
		dec,err := zstd.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("zstdopen %s: %w", name, err)
		}
		zRdr := dec.IOReadCloser()
		return &stackedReadCloser{Reader:zRdr, closers:[]io.Closer{zRdr, raw}}, nil
	}

	return raw,nil
}

// }}}
// {{{ o.Exists

func (o *Opener)Exists(ctx context.Context, name string) (bool, error) {
	full := o.Resolve(name)

	if !strings.HasPrefix(full, gcsPrefix) {
		if _,err := os.Stat(full); errors.Is(err, os.ErrNotExist) {
			return false,nil
		} else if err != nil {
			return false,err
		}
		return true,nil
	}

	bucket,object,err := splitGCS(full)
	if err != nil { return false,err }
	client,err := o.gcsClient(ctx)
	if err != nil { return false,err }

	if _,err := client.Bucket(bucket).Object(object).Attrs(ctx); errors.Is(err, storage.ErrObjectNotExist) {
		return false,nil
	} else if err != nil {
		return false, fmt.Errorf("GCS-Attrs %s: %w", full, err)
	}
	return true,nil
}

// }}}
// {{{ o.Close

func (o *Opener)Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.client == nil { return nil }
	err := o.client.Close()
	o.client = nil
	return err
}

// }}}

// {{{ stackedReadCloser

// Closes the decompressor, then the underlying stream.
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser)Close() error {
	var first error
	for _,c := range s.closers {
		if err := c.Close(); err != nil && first == nil { first = err }
	}
	return first
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
