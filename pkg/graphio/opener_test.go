package graphio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-conceal/pkg/graph"
)

// fakeS3 keeps objects in memory keyed by "bucket/key"
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func sampleGraph() *graph.Graph {
	g := graph.New()
	g.AddEdge("1", "2")
	g.AddEdge("2", "3")
	g.AddEdge("3", "4")
	return g
}

func TestOpener_LocalMapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2\n2 3\n3 4\n"), 0o644))

	o := &Opener{}
	g, err := o.LoadGraph(context.Background(), path, LoadOptions{})
	require.NoError(t, err)
	assert.True(t, sampleGraph().Equal(g))
}

func TestOpener_LocalEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	o := &Opener{}
	g, err := o.LoadGraph(context.Background(), path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
}

func TestOpener_LocalMissing(t *testing.T) {
	o := &Opener{}
	_, err := o.Open(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestOpener_SnappyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt.sz")
	o := &Opener{}
	ctx := context.Background()

	require.NoError(t, o.SaveGraph(ctx, path, sampleGraph()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	plain, err := io.ReadAll(snappy.NewReader(bytes.NewReader(raw)))
	require.NoError(t, err)
	assert.Equal(t, "1 2\n2 3\n3 4\n", string(plain))

	g, err := o.LoadGraph(ctx, path, LoadOptions{})
	require.NoError(t, err)
	assert.True(t, sampleGraph().Equal(g))
}

func TestOpener_S3RoundTrip(t *testing.T) {
	fake := newFakeS3()
	o := &Opener{S3: fake}
	ctx := context.Background()

	sets := []graph.TargetSet{{"1", "2"}, {"3", "4", "5"}}
	require.NoError(t, o.SaveTargetSets(ctx, "s3://bucket/runs/targets.txt", sets))
	assert.Equal(t, "1 2\n3 4 5\n", string(fake.objects["bucket/runs/targets.txt"]))

	back, err := o.LoadTargetSets(ctx, "s3://bucket/runs/targets.txt")
	require.NoError(t, err)
	assert.Equal(t, sets, back)

	require.NoError(t, o.SaveGraph(ctx, "s3://bucket/g.txt.sz", sampleGraph()))
	g, err := o.LoadGraph(ctx, "s3://bucket/g.txt.sz", LoadOptions{})
	require.NoError(t, err)
	assert.True(t, sampleGraph().Equal(g))
}

func TestOpener_S3Errors(t *testing.T) {
	ctx := context.Background()

	_, err := (&Opener{}).Open(ctx, "s3://bucket/key")
	assert.ErrorIs(t, err, ErrNoS3Client)

	_, err = (&Opener{}).Create(ctx, "s3://bucket/key")
	assert.ErrorIs(t, err, ErrNoS3Client)

	o := &Opener{S3: newFakeS3()}
	_, err = o.Open(ctx, "s3://bucket/missing")
	assert.Error(t, err)

	_, err = o.Open(ctx, "s3://bucket")
	assert.Error(t, err, "key is required")
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := parseS3URI("s3://data/graphs/karate.txt")
	require.NoError(t, err)
	assert.Equal(t, "data", bucket)
	assert.Equal(t, "graphs/karate.txt", key)

	_, _, err = parseS3URI("s3:///key")
	assert.Error(t, err)
}

func TestOpener_LoadPartition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "communities.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 0\n2 0\n3 1\n"), 0o644))

	p, err := (&Opener{}).LoadPartition(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, graph.Partition{"1": 0, "2": 0, "3": 1}, p)
}
