package schema

// ParameterDescriptor is one declared input of a model's request body. The
// name doubles as the human label and the submission key; there is no
// aliasing layer.
type ParameterDescriptor struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
	Example     any    `json:"example,omitempty"`
	Options     []any  `json:"options,omitempty"`
}

// ModelSchema is the declared parameter set of one model. Upstream schemas
// also declare headers and response parameters; only the request body is
// consumed here. Fetched fresh per model selection, never cached across
// models.
type ModelSchema struct {
	RequestBody []ParameterDescriptor `json:"request_body"`
}

// RenderSpecs resolves every request-body parameter into its render spec,
// preserving declaration order.
func (s *ModelSchema) RenderSpecs() []FieldRenderSpec {
	specs := make([]FieldRenderSpec, 0, len(s.RequestBody))
	for i := range s.RequestBody {
		specs = append(specs, Resolve(s.RequestBody[i]))
	}
	return specs
}

// Partitioned splits render specs into the always-visible required fields
// and the collapsed optional ones.
func Partitioned(specs []FieldRenderSpec) (required, optional []FieldRenderSpec) {
	for _, spec := range specs {
		if spec.Partition == PartitionRequired {
			required = append(required, spec)
		} else {
			optional = append(optional, spec)
		}
	}
	return required, optional
}
