package loader

import (
	"errors"

	"gopkg.in/yaml.v3"
)

var errNotMapping = errors.New("not a mapping")

// decodeYAML accepts a single mapping document. An empty document decodes
// to an empty map.
func decodeYAML(source string, data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	out := make(map[string]any)
	if len(doc.Content) == 0 {
		return out, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Path:    source,
			Line:    root.Line,
			Column:  root.Column,
			Message: "top level must be a mapping",
			Err:     errNotMapping,
		}
	}
	if err := root.Decode(&out); err != nil {
		return nil, &ParseError{Path: source, Line: root.Line, Message: err.Error(), Err: err}
	}
	return out, nil
}
