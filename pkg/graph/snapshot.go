package graph

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
)

// Snapshot file format:
//   [Magic:4][Version:1][DataLen:4][Data:N][Checksum:4]
// Data is a snappy-compressed JSON document; the checksum covers the
// compressed bytes.
const (
	snapshotMagic   uint32 = 0x53454747 // "SEGG"
	snapshotVersion byte   = 1
)

type snapshotNode struct {
	Name   string `json:"name"`
	Op     string `json:"op,omitempty"`
	Device string `json:"device,omitempty"`
}

type snapshotEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type snapshotDoc struct {
	Nodes []snapshotNode `json:"nodes"`
	Edges []snapshotEdge `json:"edges"`
}

// SaveSnapshot writes the graph to path as a compressed snapshot.
// The parent directory is created if missing.
func (g *Graph) SaveSnapshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	doc := snapshotDoc{
		Nodes: make([]snapshotNode, 0, g.NodeCount()),
		Edges: make([]snapshotEdge, 0, g.EdgeCount()),
	}
	for _, node := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, snapshotNode{Name: node.Name, Op: node.Op, Device: node.Device})
	}
	for _, edge := range g.Edges() {
		doc.Edges = append(doc.Edges, snapshotEdge{From: edge.From, To: edge.To})
	}

	data, err := json.Marshal(&doc)
	if err != nil {
		return NewError("SaveSnapshot").Snapshot().Cause(err).Err()
	}
	compressed := snappy.Encode(nil, data)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := writeSnapshotFrame(writer, compressed); err != nil {
		return NewError("SaveSnapshot").Snapshot().Cause(err).Err()
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return file.Sync()
}

// LoadSnapshot reads a graph previously written by SaveSnapshot.
func LoadSnapshot(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	compressed, err := readSnapshotFrame(bufio.NewReader(file))
	if err != nil {
		return nil, NewError("LoadSnapshot").Snapshot().Context(path).Cause(err).Err()
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, NewError("LoadSnapshot").Snapshot().Context(path).Cause(ErrCorruptSnapshot).Err()
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewError("LoadSnapshot").Snapshot().Context(path).Cause(err).Err()
	}

	g := New()
	for _, n := range doc.Nodes {
		if _, err := g.AddNode(n.Name, n.Op, n.Device); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func writeSnapshotFrame(w io.Writer, data []byte) error {
	if err := binary.Write(w, binary.BigEndian, snapshotMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{snapshotVersion}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(data))); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, crc32.ChecksumIEEE(data))
}

func readSnapshotFrame(r io.Reader) ([]byte, error) {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, ErrCorruptSnapshot
	}
	if magic != snapshotMagic {
		return nil, ErrCorruptSnapshot
	}

	version := make([]byte, 1)
	if _, err := io.ReadFull(r, version); err != nil {
		return nil, ErrCorruptSnapshot
	}
	if version[0] != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, version[0])
	}

	var dataLen uint32
	if err := binary.Read(r, binary.BigEndian, &dataLen); err != nil {
		return nil, ErrCorruptSnapshot
	}

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, ErrCorruptSnapshot
	}

	var checksum uint32
	if err := binary.Read(r, binary.BigEndian, &checksum); err != nil {
		return nil, ErrCorruptSnapshot
	}
	if checksum != crc32.ChecksumIEEE(data) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptSnapshot)
	}
	return data, nil
}
