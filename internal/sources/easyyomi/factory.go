package easyyomi

import (
	"fmt"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
)

// DefaultSuffixes are the instances shipped by default: one unsuffixed source
// plus two more so several servers can be configured side by side.
var DefaultSuffixes = []string{"", "2", "3"}

// Factory creates one independently configured source per suffix.
type Factory struct {
	Suffixes []string
	Options  Options
}

// CreateSources builds every instance. Suffixes must be distinct, since the
// suffix alone determines the instance ID and its preference namespace.
func (f Factory) CreateSources() ([]models.Source, error) {
	suffixes := f.Suffixes
	if suffixes == nil {
		suffixes = DefaultSuffixes
	}

	seen := make(map[int64]string, len(suffixes))
	sources := make([]models.Source, 0, len(suffixes))
	for _, suffix := range suffixes {
		src, err := New(suffix, f.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to create source %q: %w", suffix, err)
		}
		id := src.Info().ID
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("suffix %q yields the same source ID as %q", suffix, prev)
		}
		seen[id] = suffix
		sources = append(sources, src)
	}
	return sources, nil
}

// PreferenceNamespace is the storage namespace of the source with the given ID.
func PreferenceNamespace(sourceID int64) string {
	return fmt.Sprintf("source_%d", sourceID)
}
