package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxNodeNameLength = 512
	MaxDeviceLength   = 256
	MaxOpLength       = 128
	MaxGraphNodes     = 1_000_000
	MaxExcludeNodes   = 100_000

	// Node names follow the usual computation-graph convention: path-like
	// names with scopes, e.g. "tower_0/conv1/BiasAdd".
	nodeNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.:/-]+$`)
)

func init() {
	validate = validator.New()
}

// NodeSpec describes one node of an uploaded graph.
type NodeSpec struct {
	Name   string `json:"name" validate:"required,max=512"`
	Op     string `json:"op,omitempty" validate:"omitempty,max=128"`
	Device string `json:"device,omitempty" validate:"omitempty,max=256"`
}

// EdgeSpec describes one directed edge of an uploaded graph.
type EdgeSpec struct {
	From string `json:"from" validate:"required,max=512"`
	To   string `json:"to" validate:"required,max=512"`
}

// GraphSpec is an inline graph upload.
type GraphSpec struct {
	Nodes []NodeSpec `json:"nodes" validate:"required,min=1,dive"`
	Edges []EdgeSpec `json:"edges,omitempty" validate:"omitempty,dive"`
}

// SegmentationRequest asks the service to segment an inline graph.
type SegmentationRequest struct {
	Graph              GraphSpec `json:"graph" validate:"required"`
	MinimumSegmentSize int       `json:"minimumSegmentSize" validate:"required,min=1"`
	ExcludeNodes       []string  `json:"excludeNodes,omitempty" validate:"omitempty,max=100000,dive,min=1,max=512"`
	CandidateOps       []string  `json:"candidateOps,omitempty" validate:"omitempty,dive,min=1,max=128"`
	MandatoryNodes     []string  `json:"mandatoryNodes,omitempty" validate:"omitempty,dive,min=1,max=512"`
	WeakOps            []string  `json:"weakOps,omitempty" validate:"omitempty,dive,min=1,max=128"`
}

// ValidateSegmentationRequest validates a segmentation request
func ValidateSegmentationRequest(req *SegmentationRequest) error {
	if req == nil {
		return errors.New("segmentation request cannot be nil")
	}

	// Validate using struct tags
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if len(req.Graph.Nodes) > MaxGraphNodes {
		return fmt.Errorf("Graph.Nodes: maximum %d nodes allowed, got %d", MaxGraphNodes, len(req.Graph.Nodes))
	}

	for i, node := range req.Graph.Nodes {
		if !nodeNamePattern.MatchString(node.Name) {
			return fmt.Errorf("Graph.Nodes: node at index %d has invalid name '%s'", i, node.Name)
		}
	}
	return nil
}

// ValidateNodeName validates a single node name
func ValidateNodeName(name string) error {
	if name == "" {
		return errors.New("node name cannot be empty")
	}
	if len(name) > MaxNodeNameLength {
		return fmt.Errorf("node name '%s' exceeds maximum length of %d characters", name, MaxNodeNameLength)
	}
	if !nodeNamePattern.MatchString(name) {
		return fmt.Errorf("node name '%s' contains invalid characters", name)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
