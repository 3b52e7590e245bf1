package graphio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-conceal/pkg/graph"
)

// CompressedSuffix marks snappy framed files.
const CompressedSuffix = ".sz"

// ErrNoS3Client is returned for s3:// locations when no client is configured.
var ErrNoS3Client = errors.New("no S3 client configured")

// Opener resolves locations to readers and writers. Locations are either
// local paths or s3://bucket/key URIs; a ".sz" suffix adds snappy framing.
type Opener struct {
	S3 S3API
}

// IsS3 reports whether location is an S3 URI.
func IsS3(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// Open returns a reader for location.
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	var rc io.ReadCloser
	var err error

	if IsS3(location) {
		if o.S3 == nil {
			return nil, fmt.Errorf("open %s: %w", location, ErrNoS3Client)
		}
		rc, err = openS3(ctx, o.S3, location)
	} else {
		rc, err = openMapped(location)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(location, CompressedSuffix) {
		return &snappyReadCloser{Reader: snappy.NewReader(rc), under: rc}, nil
	}
	return rc, nil
}

// Create returns a writer that replaces location on Close.
func (o *Opener) Create(ctx context.Context, location string) (io.WriteCloser, error) {
	var wc io.WriteCloser
	var err error

	if IsS3(location) {
		if o.S3 == nil {
			return nil, fmt.Errorf("create %s: %w", location, ErrNoS3Client)
		}
		wc, err = createS3(ctx, o.S3, location)
	} else {
		wc, err = os.Create(location)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(location, CompressedSuffix) {
		return &snappyWriteCloser{Writer: snappy.NewBufferedWriter(wc), under: wc}, nil
	}
	return wc, nil
}

// LoadGraph opens location and parses it as an edge list.
func (o *Opener) LoadGraph(ctx context.Context, location string, opts LoadOptions) (*graph.Graph, error) {
	rc, err := o.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return LoadEdgeList(rc, opts)
}

// SaveGraph writes g as an edge list to location.
func (o *Opener) SaveGraph(ctx context.Context, location string, g *graph.Graph) error {
	wc, err := o.Create(ctx, location)
	if err != nil {
		return err
	}
	if err := WriteEdgeList(wc, g); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

// LoadPartition opens location and parses it as a community assignment.
func (o *Opener) LoadPartition(ctx context.Context, location string) (graph.Partition, error) {
	rc, err := o.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return LoadAssignment(rc)
}

// LoadTargetSets opens location and parses it as a target list.
func (o *Opener) LoadTargetSets(ctx context.Context, location string) ([]graph.TargetSet, error) {
	rc, err := o.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return LoadTargets(rc)
}

// SaveTargetSets writes sets as a target list to location.
func (o *Opener) SaveTargetSets(ctx context.Context, location string, sets []graph.TargetSet) error {
	wc, err := o.Create(ctx, location)
	if err != nil {
		return err
	}
	if err := WriteTargets(wc, sets); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

// openMapped memory-maps a local file for sequential reading.
func openMapped(path string) (io.ReadCloser, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &mappedFile{
		SectionReader: io.NewSectionReader(reader, 0, int64(reader.Len())),
		mapping:       reader,
	}, nil
}

type mappedFile struct {
	*io.SectionReader
	mapping *mmap.ReaderAt
}

func (m *mappedFile) Close() error {
	return m.mapping.Close()
}

type snappyReadCloser struct {
	*snappy.Reader
	under io.Closer
}

func (s *snappyReadCloser) Close() error {
	return s.under.Close()
}

// snappyWriteCloser flushes the framing before closing the destination.
type snappyWriteCloser struct {
	*snappy.Writer
	under io.Closer
}

func (s *snappyWriteCloser) Close() error {
	if err := s.Writer.Close(); err != nil {
		s.under.Close()
		return err
	}
	return s.under.Close()
}
