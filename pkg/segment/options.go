package segment

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultMinimumSegmentSize is the minimum member count a segment must reach
// to be worth fusing.
const DefaultMinimumSegmentSize = 2

var validate = validator.New()

// Options controls a segmentation run.
type Options struct {
	// MinimumSegmentSize drops segments with fewer members, unless the
	// segment contains a mandatory node. Must be at least 1.
	MinimumSegmentSize int `json:"minimumSegmentSize" yaml:"minimum_segment_size" validate:"required,min=1"`

	// ExcludeNodes lists node names forcibly treated as non-candidates.
	// Names that do not exist in the graph are ignored.
	ExcludeNodes []string `json:"excludeNodes,omitempty" yaml:"exclude_nodes" validate:"omitempty,dive,min=1"`
}

// DefaultOptions returns options with the default minimum segment size and
// no exclusions.
func DefaultOptions() Options {
	return Options{MinimumSegmentSize: DefaultMinimumSegmentSize}
}

// Validate checks the options, failing fast on invalid configuration.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return invalidConfig(fmt.Sprintf("field %s failed %q validation", errs[0].Field(), errs[0].Tag()))
		}
		return invalidConfig(err.Error())
	}
	return nil
}

// excludeSet builds a lookup set from ExcludeNodes.
func (o *Options) excludeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(o.ExcludeNodes))
	for _, name := range o.ExcludeNodes {
		set[name] = struct{}{}
	}
	return set
}
