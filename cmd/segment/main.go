package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-segmenter/pkg/graph"
	"github.com/dd0wney/cluso-segmenter/pkg/pipeline"
	"github.com/dd0wney/cluso-segmenter/pkg/segment"
	"github.com/dd0wney/cluso-segmenter/pkg/validation"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	segmentBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	deviceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	boundaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	input := flag.String("in", "", "Input graph: JSON file or binary snapshot (.snap)")
	snapshotOut := flag.String("save-snapshot", "", "Write the loaded graph back out as a binary snapshot")
	minSize := flag.Int("min-size", segment.DefaultMinimumSegmentSize, "Minimum nodes per segment")
	exclude := flag.String("exclude", "", "Comma-separated node names to exclude")
	allowOps := flag.String("allow-ops", "", "Comma-separated ops eligible for segmentation (default: all)")
	weakOps := flag.String("weak-ops", "", "Comma-separated ops that never anchor a segment")
	mandatory := flag.String("mandatory", "", "Comma-separated node names that must be segmented")
	jsonOut := flag.Bool("json", false, "Print the result as JSON instead of styled text")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	g, err := loadGraph(*input)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}

	if *snapshotOut != "" {
		if err := g.SaveSnapshot(*snapshotOut); err != nil {
			log.Fatalf("Failed to save snapshot: %v", err)
		}
		fmt.Printf("Snapshot written to %s\n", *snapshotOut)
	}

	isCandidate := func(*graph.Node) bool { return true }
	if ops := splitList(*allowOps); len(ops) > 0 {
		isCandidate = pipeline.OpAllowList(ops...)
	}
	var isMandatory, isWeak segment.NodePredicate
	if names := splitList(*mandatory); len(names) > 0 {
		isMandatory = pipeline.NamedNodes(names...)
	}
	if ops := splitList(*weakOps); len(ops) > 0 {
		isWeak = pipeline.OpAllowList(ops...)
	}

	opts := segment.Options{
		MinimumSegmentSize: *minSize,
		ExcludeNodes:       splitList(*exclude),
	}

	result, err := segment.SegmentGraphWith(g, isCandidate, isMandatory, isWeak, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("segmentation failed: "+err.Error()))
		os.Exit(1)
	}

	if *jsonOut {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		return
	}

	printResult(g, result)
}

// loadGraph reads either a binary snapshot or a plain JSON graph spec.
func loadGraph(path string) (*graph.Graph, error) {
	if strings.HasSuffix(path, ".snap") {
		return graph.LoadSnapshot(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec validation.GraphSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	g := graph.New()
	for _, node := range spec.Nodes {
		if _, err := g.AddNode(node.Name, node.Op, node.Device); err != nil {
			return nil, err
		}
	}
	for _, edge := range spec.Edges {
		if err := g.AddEdge(edge.From, edge.To); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printResult(g *graph.Graph, result *segment.Result) {
	fmt.Println(titleStyle.Render("Graph Segmentation"))
	fmt.Printf("%s %d nodes, %d edges\n\n",
		statLabelStyle.Render("graph:"), g.NodeCount(), g.EdgeCount())

	if len(result.Segments) == 0 {
		fmt.Println("No segments produced.")
		return
	}

	segmented := 0
	for i, seg := range result.Segments {
		segmented += len(seg.Nodes)
		device := seg.Device
		if device == "" {
			device = "(none)"
		}
		header := fmt.Sprintf("Segment %d  %s  %d nodes",
			i, deviceStyle.Render(device), len(seg.Nodes))
		body := strings.Join(seg.Nodes, "\n")
		fmt.Println(segmentBoxStyle.Render(header + "\n" + body))
	}

	fmt.Printf("\n%s %d of %d nodes in %d segments\n",
		statLabelStyle.Render("segmented:"), segmented, g.NodeCount(), len(result.Segments))

	if len(result.Boundary) > 0 {
		fmt.Println(statLabelStyle.Render("\nboundary edges:"))
		for _, edge := range result.Boundary {
			arrow := fmt.Sprintf("%s -> %s", edge.From, edge.To)
			fmt.Printf("  %s %s segment %d\n",
				boundaryStyle.Render(arrow), edge.Direction, edge.SegmentIndex)
		}
	}
}
