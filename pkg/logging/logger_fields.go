package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

func Pass(name string) Field {
	return String("pass", name)
}

func Device(device string) Field {
	return String("device", device)
}

func GraphNodes(n int) Field {
	return Int("graph_nodes", n)
}

func GraphEdges(n int) Field {
	return Int("graph_edges", n)
}

func SegmentCount(n int) Field {
	return Int("segment_count", n)
}

func NodesSegmented(n int) Field {
	return Int("nodes_segmented", n)
}

func MinSegmentSize(n int) Field {
	return Int("min_segment_size", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Path(p string) Field {
	return String("path", p)
}
