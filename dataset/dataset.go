// Package dataset persists graph collections, centroid lists and
// distance caches in an explicit, versioned container format.
//
// Every file carries a fixed header (magic, format version, payload
// kind, compression scheme, codec name, CRC32 checksum) in front of a
// codec-encoded record payload, so files are self-describing and
// corruption is detected on load. Storage backends are pluggable via the
// Store interface (local directory, in-memory, S3 in dataset/s3).
package dataset

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ByJuanDiego/graphclust/graph"
	"github.com/ByJuanDiego/graphclust/memo"
)

// GraphRecord is the wire schema of one persisted graph.
type GraphRecord struct {
	Path     string         `json:"path"`
	Vertices []graph.Vertex `json:"vertices"`
	Edges    []graph.Edge   `json:"edges"`
}

func toRecords(graphs []*graph.Graph) []GraphRecord {
	records := make([]GraphRecord, 0, len(graphs))
	for _, g := range graphs {
		records = append(records, GraphRecord{
			Path:     g.Path(),
			Vertices: g.Vertices(),
			Edges:    g.Edges(),
		})
	}
	return records
}

func fromRecords(records []GraphRecord) ([]*graph.Graph, error) {
	graphs := make([]*graph.Graph, 0, len(records))
	for _, r := range records {
		g, err := graph.New(r.Path, r.Vertices, r.Edges)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// SaveGraphs persists a graph collection under the given name.
func SaveGraphs(ctx context.Context, store Store, name string, graphs []*graph.Graph) error {
	data, err := encode(KindGraphs, toRecords(graphs))
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// LoadGraphs loads a graph collection stored under the given name.
func LoadGraphs(ctx context.Context, store Store, name string) ([]*graph.Graph, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	var records []GraphRecord
	if err := decode(data, KindGraphs, &records); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return fromRecords(records)
}

// SaveCentroids persists a centroid list under the given name.
func SaveCentroids(ctx context.Context, store Store, name string, centroids []*graph.Graph) error {
	data, err := encode(KindCentroids, toRecords(centroids))
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// LoadCentroids loads a centroid list stored under the given name.
func LoadCentroids(ctx context.Context, store Store, name string) ([]*graph.Graph, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	var records []GraphRecord
	if err := decode(data, KindCentroids, &records); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return fromRecords(records)
}

// SaveCache persists distance cache entries under the given name.
func SaveCache(ctx context.Context, store Store, name string, entries []memo.Entry) error {
	data, err := encode(KindCache, entries)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// LoadCache loads distance cache entries stored under the given name.
func LoadCache(ctx context.Context, store Store, name string) ([]memo.Entry, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	var entries []memo.Entry
	if err := decode(data, KindCache, &entries); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return entries, nil
}

// BatchWriter splits a large graph collection across numbered part files
// (<prefix>_<n>.pgb). A part is flushed as soon as the in-memory batch
// exceeds the configured size; Close flushes the remainder.
type BatchWriter struct {
	store     Store
	prefix    string
	batchSize int

	pending []*graph.Graph
	part    int
}

// NewBatchWriter creates a BatchWriter. batchSize values below 1 default
// to 1000.
func NewBatchWriter(store Store, prefix string, batchSize int) *BatchWriter {
	if batchSize < 1 {
		batchSize = 1000
	}
	return &BatchWriter{
		store:     store,
		prefix:    prefix,
		batchSize: batchSize,
	}
}

// Add buffers one graph, flushing a part file when the batch exceeds the
// configured size.
func (w *BatchWriter) Add(ctx context.Context, g *graph.Graph) error {
	w.pending = append(w.pending, g)

	if len(w.pending) > w.batchSize {
		return w.flush(ctx)
	}

	return nil
}

// Close flushes any buffered graphs. The writer must not be reused after
// Close.
func (w *BatchWriter) Close(ctx context.Context) error {
	if len(w.pending) == 0 {
		return nil
	}
	return w.flush(ctx)
}

// Parts returns the number of part files written so far.
func (w *BatchWriter) Parts() int { return w.part }

func (w *BatchWriter) flush(ctx context.Context) error {
	w.part++

	name := fmt.Sprintf("%s_%d.pgb", w.prefix, w.part)
	if err := SaveGraphs(ctx, w.store, name, w.pending); err != nil {
		w.part--
		return err
	}

	w.pending = w.pending[:0]

	return nil
}

// LoadParts loads and concatenates every part file under the given
// prefix. Parts are loaded in ascending part number, so a collection
// written through a BatchWriter reloads in write order; names without a
// numeric suffix sort lexicographically after the numbered ones.
func LoadParts(ctx context.Context, store Store, prefix string) ([]*graph.Graph, error) {
	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(names, func(i, j int) bool {
		ni, iok := partIndex(names[i])
		nj, jok := partIndex(names[j])
		if iok && jok {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return names[i] < names[j]
	})

	var graphs []*graph.Graph
	for _, name := range names {
		part, err := LoadGraphs(ctx, store, name)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, part...)
	}

	return graphs, nil
}

// partIndex extracts the numeric suffix of a part name
// (<prefix>_<n>.pgb). ok is false for names without one.
func partIndex(name string) (int, bool) {
	base := strings.TrimSuffix(name, ".pgb")

	i := strings.LastIndex(base, "_")
	if i < 0 {
		return 0, false
	}

	n, err := strconv.Atoi(base[i+1:])
	if err != nil {
		return 0, false
	}

	return n, true
}
