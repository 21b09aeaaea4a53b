package render

import (
	"fmt"
	"mime"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"
)

// Media types served by the built-in renderers.
const (
	MediaTypeJSON = "application/json"
	MediaTypeYAML = "application/yaml"
)

// Renderer serializes a response body. Output is deterministic: map keys are
// sorted, so rendering the same value twice yields identical bytes.
type Renderer interface {
	MediaType() string
	Render(v any) ([]byte, error)
}

// JSON renders with goccy/go-json.
type JSON struct{}

// MediaType returns application/json.
func (JSON) MediaType() string { return MediaTypeJSON }

// Render marshals v to JSON.
func (JSON) Render(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return b, nil
}

// YAML renders with go.yaml.in/yaml/v3.
type YAML struct{}

// MediaType returns application/yaml.
func (YAML) MediaType() string { return MediaTypeYAML }

// Render marshals v to YAML.
func (YAML) Render(v any) ([]byte, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("render yaml: %w", err)
	}
	return b, nil
}

// aliases maps alternative media types onto the one a renderer reports.
var aliases = map[string]string{
	"text/json":          MediaTypeJSON,
	"application/x-yaml": MediaTypeYAML,
	"text/yaml":          MediaTypeYAML,
	"text/x-yaml":        MediaTypeYAML,
}

// Registry selects a renderer by Accept header. The first renderer is the
// default.
type Registry struct {
	renderers []Renderer
	byType    map[string]Renderer
}

// NewRegistry builds a registry. With no renderers it holds JSON then YAML.
func NewRegistry(renderers ...Renderer) *Registry {
	if len(renderers) == 0 {
		renderers = []Renderer{JSON{}, YAML{}}
	}
	r := &Registry{
		renderers: renderers,
		byType:    make(map[string]Renderer, len(renderers)),
	}
	for _, rd := range renderers {
		r.byType[rd.MediaType()] = rd
	}
	return r
}

// Default returns the first renderer.
func (r *Registry) Default() Renderer {
	return r.renderers[0]
}

// Lookup returns the renderer for an exact (or aliased) media type.
func (r *Registry) Lookup(mediaType string) (Renderer, bool) {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if alias, ok := aliases[mediaType]; ok {
		mediaType = alias
	}
	rd, ok := r.byType[mediaType]
	return rd, ok
}

type acceptRange struct {
	mediaType string
	q         float64
	order     int
}

// Negotiate picks the renderer for an Accept header. Ranges are tried by
// descending quality, then by position; an empty header, a wildcard or no
// match yields the default renderer.
func (r *Registry) Negotiate(accept string) Renderer {
	if rd, ok := r.match(accept); ok {
		return rd
	}
	return r.Default()
}

// Acceptable reports whether some renderer satisfies the Accept header.
func (r *Registry) Acceptable(accept string) bool {
	if strings.TrimSpace(accept) == "" {
		return true
	}
	_, ok := r.match(accept)
	return ok
}

func (r *Registry) match(accept string) (Renderer, bool) {
	ranges := parseAccept(accept)
	for _, ar := range ranges {
		switch {
		case ar.mediaType == "*/*":
			return r.Default(), true
		case strings.HasSuffix(ar.mediaType, "/*"):
			prefix := strings.TrimSuffix(ar.mediaType, "*")
			for _, rd := range r.renderers {
				if strings.HasPrefix(rd.MediaType(), prefix) {
					return rd, true
				}
			}
		default:
			if rd, ok := r.Lookup(ar.mediaType); ok {
				return rd, true
			}
		}
	}
	return nil, false
}

func parseAccept(accept string) []acceptRange {
	var ranges []acceptRange
	for i, part := range strings.Split(accept, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mediaType, params, err := mime.ParseMediaType(part)
		if err != nil {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				q = parsed
			}
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, acceptRange{mediaType: mediaType, q: q, order: i})
	}
	sort.SliceStable(ranges, func(a, b int) bool {
		return ranges[a].q > ranges[b].q
	})
	return ranges
}
