package survey

import (
	"embed"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/hearthops/intake/pkg/errors"
)

//go:embed routing/questions.yaml
var routingFS embed.FS

// Decoder names the shape a recognized answer is decoded with.
type Decoder string

// Supported decoders.
const (
	DecodeText      Decoder = "text"
	DecodeEmail     Decoder = "email"
	DecodePhone     Decoder = "phone"
	DecodeURL       Decoder = "url"
	DecodeLevel     Decoder = "level"
	DecodeSelect    Decoder = "select"
	DecodePets      Decoder = "pets"
	DecodeHousehold Decoder = "household"
)

// Question is one routing-table entry: a recognized source question and how
// its answer maps onto the canonical profile.
type Question struct {
	ID       string  `yaml:"id"`
	Label    string  `yaml:"label"`
	Decoder  Decoder `yaml:"decoder"`
	Field    string  `yaml:"field,omitempty"`    // profile field for text-like decoders
	Area     Area    `yaml:"area,omitempty"`     // capability area for the level decoder
	Select   string  `yaml:"select,omitempty"`   // "relational" or "autonomy"
	Required bool    `yaml:"required,omitempty"`
}

// Routing is the static question→field dispatch table, loaded once at
// process start and never mutated.
type Routing struct {
	questions []Question
	byID      map[string]Question
}

// LoadRouting parses a routing table from YAML.
func LoadRouting(data []byte) (*Routing, error) {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "routing table", err)
	}
	if len(doc.Questions) == 0 {
		return nil, errors.NewValidationError("questions", nil, "routing table has no entries")
	}

	r := &Routing{
		questions: doc.Questions,
		byID:      make(map[string]Question, len(doc.Questions)),
	}
	for _, q := range doc.Questions {
		if q.ID == "" {
			return nil, errors.NewValidationError("id", q, "routing entry missing question id")
		}
		if _, dup := r.byID[q.ID]; dup {
			return nil, errors.NewValidationError("id", q.ID, "duplicate routing entry")
		}
		r.byID[q.ID] = q
	}
	return r, nil
}

var (
	defaultRouting     *Routing
	defaultRoutingErr  error
	defaultRoutingOnce sync.Once
)

// DefaultRouting returns the routing table embedded in the binary.
func DefaultRouting() (*Routing, error) {
	defaultRoutingOnce.Do(func() {
		data, err := routingFS.ReadFile("routing/questions.yaml")
		if err != nil {
			defaultRoutingErr = err
			return
		}
		defaultRouting, defaultRoutingErr = LoadRouting(data)
	})
	return defaultRouting, defaultRoutingErr
}

// Lookup returns the routing entry for a question ID.
func (r *Routing) Lookup(id string) (Question, bool) {
	q, ok := r.byID[id]
	return q, ok
}

// Questions returns all routing entries in table order.
func (r *Routing) Questions() []Question {
	return r.questions
}

// Required returns the IDs of all questions that must be answered for a
// submission to count as complete.
func (r *Routing) Required() []string {
	var ids []string
	for _, q := range r.questions {
		if q.Required {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
