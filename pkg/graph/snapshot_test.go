package graph

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func buildSnapshotTestGraph(t *testing.T) *Graph {
	t.Helper()

	g := New()
	g.AddNode("input", "Placeholder", "")
	g.AddNode("conv", "Conv2D", "GPU:0")
	g.AddNode("relu", "Relu", "GPU:0")
	g.AddEdge("input", "conv")
	g.AddEdge("conv", "relu")
	return g
}

// TestSnapshotRoundTrip tests that a saved graph loads back identically
func TestSnapshotRoundTrip(t *testing.T) {
	g := buildSnapshotTestGraph(t)
	path := filepath.Join(t.TempDir(), "graph.seg")

	if err := g.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if !reflect.DeepEqual(g.NodeNames(), loaded.NodeNames()) {
		t.Errorf("Node order changed: %v vs %v", g.NodeNames(), loaded.NodeNames())
	}
	if loaded.EdgeCount() != g.EdgeCount() {
		t.Errorf("Expected %d edges, got %d", g.EdgeCount(), loaded.EdgeCount())
	}
	conv := loaded.Node("conv")
	if conv == nil || conv.Device != "GPU:0" || conv.Op != "Conv2D" {
		t.Errorf("Node attributes lost: %+v", conv)
	}
}

// TestLoadSnapshot_CorruptData tests checksum and framing validation
func TestLoadSnapshot_CorruptData(t *testing.T) {
	g := buildSnapshotTestGraph(t)
	path := filepath.Join(t.TempDir(), "graph.seg")
	if err := g.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	// Flip a byte in the compressed payload
	data[len(data)/2] ^= 0xFF
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadSnapshot(path); !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("Expected ErrCorruptSnapshot, got %v", err)
	}
}

// TestLoadSnapshot_BadMagic tests rejection of foreign files
func TestLoadSnapshot_BadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-snapshot")
	if err := os.WriteFile(path, []byte("plain text file"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadSnapshot(path); !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("Expected ErrCorruptSnapshot, got %v", err)
	}
}

// TestSaveSnapshot_CreatesDirectory tests parent directory creation
func TestSaveSnapshot_CreatesDirectory(t *testing.T) {
	g := buildSnapshotTestGraph(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "graph.seg")

	if err := g.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := LoadSnapshot(path); err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
}
