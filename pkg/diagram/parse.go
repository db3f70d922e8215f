package diagram

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/iishyfishyy/sketchflow/pkg/errors"
)

// Parse validates raw JSON input against the diagram schema, applies
// defaults, and returns the typed Diagram value.
//
// Validation is purely structural: every input error carries the
// SCHEMA_ERROR code with an instance path to the offending location. A
// failure to compile the embedded schema is reported as INTERNAL_ERROR.
// Semantic issues (dangling edge endpoints, duplicate ids, unknown group
// members) pass through and are handled best-effort by the layout stage.
func Parse(raw []byte) (*Diagram, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "diagram schema failed to compile")
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "input is not valid JSON")
	}

	if err := s.Validate(doc); err != nil {
		return nil, toSchemaError(err)
	}

	// Structurally valid: decode into the matching variant.
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeSchema, "/: input must be an object")
	}
	typ, _ := obj["type"].(string)

	d := &Diagram{Type: typ}
	switch typ {
	case TypeFlow:
		var f Flow
		if err := decodeInto(raw, &f); err != nil {
			return nil, err
		}
		applyFlowDefaults(&f)
		d.Flow = &f
	case TypeSequence:
		var seq Sequence
		if err := decodeInto(raw, &seq); err != nil {
			return nil, err
		}
		applySequenceDefaults(&seq)
		d.Sequence = &seq
	default:
		// Unreachable after schema validation; kept as a guard.
		return nil, errors.New(errors.ErrCodeSchema, "/type: unknown diagram type %q", typ)
	}

	return d, nil
}

// decodeInto unmarshals the already-validated raw bytes into dst.
func decodeInto(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrap(errors.ErrCodeSchema, err, "decode diagram")
	}
	return nil
}

// applyFlowDefaults fills missing optional fields per the data model.
func applyFlowDefaults(f *Flow) {
	if f.Style == "" {
		f.Style = StyleHandDrawn
	}
	if f.Direction == "" {
		f.Direction = DirectionTB
	}
	if f.Edges == nil {
		f.Edges = []Edge{}
	}
	if f.Groups == nil {
		f.Groups = []Group{}
	}
	for i := range f.Nodes {
		if f.Nodes[i].Shape == "" {
			f.Nodes[i].Shape = ShapeRectangle
		}
		f.Nodes[i].Color = strings.ToLower(f.Nodes[i].Color)
		f.Nodes[i].TextColor = strings.ToLower(f.Nodes[i].TextColor)
	}
	for i := range f.Edges {
		if f.Edges[i].Style == "" {
			f.Edges[i].Style = EdgeSolid
		}
		if f.Edges[i].Direction == "" {
			f.Edges[i].Direction = ArrowForward
		}
		f.Edges[i].Color = strings.ToLower(f.Edges[i].Color)
	}
	for i := range f.Groups {
		f.Groups[i].Color = strings.ToLower(f.Groups[i].Color)
	}
}

// applySequenceDefaults fills missing optional fields per the data model.
func applySequenceDefaults(s *Sequence) {
	if s.Style == "" {
		s.Style = StyleHandDrawn
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	for i := range s.Participants {
		s.Participants[i].Color = strings.ToLower(s.Participants[i].Color)
	}
	for i := range s.Messages {
		if s.Messages[i].Style == "" {
			s.Messages[i].Style = EdgeSolid
		}
		s.Messages[i].Color = strings.ToLower(s.Messages[i].Color)
	}
}

// toSchemaError converts a jsonschema.ValidationError into a structured
// SCHEMA_ERROR whose message leads with the instance path of the first
// violation.
func toSchemaError(err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.Wrap(errors.ErrCodeSchema, err, "schema validation failed")
	}

	violations := collectViolations(verr)
	if len(violations) == 0 {
		return errors.New(errors.ErrCodeSchema, "%s", verr.Error())
	}
	if len(violations) == 1 {
		return errors.New(errors.ErrCodeSchema, "%s", violations[0])
	}
	return errors.New(errors.ErrCodeSchema, "%s (and %d more violations)", violations[0], len(violations)-1)
}

// collectViolations walks a ValidationError tree and collects leaf messages
// with their instance locations.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
