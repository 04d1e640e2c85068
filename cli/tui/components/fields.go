package components

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/schema"
)

// FieldSet binds a resolved schema to huh form fields and collects the
// entered values back into the flat submission record.
type FieldSet struct {
	bindings []*fieldBinding
}

// fieldBinding holds the typed huh value target for one field. Text-like
// categories share the string binding; collection coerces per category.
type fieldBinding struct {
	spec    schema.FieldRenderSpec
	text    string
	boolean bool
	choice  any
}

// NewFieldSet creates bindings for every render spec, preserving order.
func NewFieldSet(specs []schema.FieldRenderSpec) *FieldSet {
	fs := &FieldSet{bindings: make([]*fieldBinding, 0, len(specs))}
	for _, spec := range specs {
		fs.bindings = append(fs.bindings, &fieldBinding{spec: spec})
	}
	return fs
}

// Empty reports whether the set renders no fields at all.
func (fs *FieldSet) Empty() bool {
	return len(fs.bindings) == 0
}

// Form builds the huh form: required fields in an always-visible group,
// optional fields behind an advanced-settings group.
func (fs *FieldSet) Form() *huh.Form {
	var required, optional []huh.Field
	for _, b := range fs.bindings {
		field := b.buildField()
		if b.spec.Partition == schema.PartitionRequired {
			required = append(required, field)
		} else {
			optional = append(optional, field)
		}
	}

	groups := make([]*huh.Group, 0, 2)
	if len(required) > 0 {
		groups = append(groups, huh.NewGroup(required...).Title("Parameters"))
	}
	if len(optional) > 0 {
		groups = append(groups, huh.NewGroup(optional...).Title("Advanced settings"))
	}
	return huh.NewForm(groups...)
}

// ApplyValues prefills bindings from a previously collected record, so a
// reopened form keeps what the user already entered.
func (fs *FieldSet) ApplyValues(values map[string]any) {
	for _, b := range fs.bindings {
		value, ok := values[b.spec.Descriptor.Name]
		if !ok {
			continue
		}
		switch b.spec.Category {
		case schema.CategorySelect:
			b.choice = value
		case schema.CategoryBoolean:
			if v, ok := value.(bool); ok {
				b.boolean = v
			}
		case schema.CategoryNumeric:
			b.text = fmt.Sprintf("%v", value)
		case schema.CategoryTags:
			if tags, ok := value.([]string); ok {
				b.text = strings.Join(tags, ", ")
			}
		case schema.CategoryJSONBlob:
			if raw, err := json.Marshal(value); err == nil {
				b.text = string(raw)
			}
		default:
			if v, ok := value.(string); ok {
				b.text = v
			}
		}
	}
}

// Collect validates and coerces the entered values into the flat record.
// Fields without a value are omitted; required fields without a value
// block with "please enter <name>".
func (fs *FieldSet) Collect() (map[string]any, error) {
	record := make(map[string]any)
	for _, b := range fs.bindings {
		value, present, err := b.collect()
		if err != nil {
			return nil, err
		}
		if present {
			record[b.spec.Descriptor.Name] = value
		}
	}
	return record, nil
}

func (b *fieldBinding) buildField() huh.Field {
	name := b.spec.Descriptor.Name
	switch b.spec.Category {
	case schema.CategorySelect:
		options := make([]huh.Option[any], 0, len(b.spec.Options))
		for _, opt := range b.spec.Options {
			options = append(options, huh.NewOption(opt.Label, opt.Value))
		}
		field := huh.NewSelect[any]().
			Title(name).
			Description(b.spec.Descriptor.Description).
			Options(options...).
			Value(&b.choice)
		if b.spec.Descriptor.Required {
			field = field.Validate(func(v any) error {
				if v == nil {
					return fmt.Errorf("please enter %s", name)
				}
				return nil
			})
		}
		return field
	case schema.CategoryBoolean:
		return huh.NewConfirm().
			Title(name).
			Description(b.spec.Descriptor.Description).
			Value(&b.boolean)
	case schema.CategoryNumeric:
		return huh.NewInput().
			Title(name).
			Description(b.spec.Descriptor.Description).
			Placeholder(b.placeholder()).
			Value(&b.text).
			Validate(func(v string) error {
				v = strings.TrimSpace(v)
				if v == "" {
					return b.requireError()
				}
				if _, err := strconv.ParseFloat(v, 64); err != nil {
					return fmt.Errorf("%s must be a number", name)
				}
				return nil
			})
	case schema.CategoryMultilineText:
		return huh.NewText().
			Title(name).
			Description(b.spec.Descriptor.Description).
			Placeholder(b.placeholder()).
			Value(&b.text).
			Validate(func(v string) error {
				if strings.TrimSpace(v) == "" {
					return b.requireError()
				}
				return nil
			})
	case schema.CategoryUpload:
		description := "URL of the uploaded asset"
		if b.spec.Descriptor.Description != "" {
			description = b.spec.Descriptor.Description + " (URL of the uploaded asset)"
		}
		return huh.NewInput().
			Title(name).
			Description(description).
			Placeholder(b.placeholder()).
			Value(&b.text).
			Validate(func(v string) error {
				if strings.TrimSpace(v) == "" {
					return b.requireError()
				}
				return nil
			})
	case schema.CategoryTags:
		description := "comma-separated values"
		if b.spec.Descriptor.Description != "" {
			description = b.spec.Descriptor.Description + " (comma-separated)"
		}
		return huh.NewInput().
			Title(name).
			Description(description).
			Placeholder(b.placeholder()).
			Value(&b.text).
			Validate(func(v string) error {
				if strings.TrimSpace(v) == "" {
					return b.requireError()
				}
				return nil
			})
	case schema.CategoryJSONBlob:
		return huh.NewText().
			Title(name).
			Description(b.spec.Descriptor.Description).
			Placeholder("Enter JSON object").
			Value(&b.text).
			Validate(func(v string) error {
				if strings.TrimSpace(v) == "" {
					return b.requireError()
				}
				if !json.Valid([]byte(v)) {
					return fmt.Errorf("invalid JSON format")
				}
				return nil
			})
	default:
		return huh.NewInput().
			Title(name).
			Description(b.spec.Descriptor.Description).
			Placeholder(b.placeholder()).
			Value(&b.text).
			Validate(func(v string) error {
				if strings.TrimSpace(v) == "" {
					return b.requireError()
				}
				return nil
			})
	}
}

// requireError blocks empty required fields; optional fields pass.
func (b *fieldBinding) requireError() error {
	if b.spec.Descriptor.Required {
		return fmt.Errorf("please enter %s", b.spec.Descriptor.Name)
	}
	return nil
}

func (b *fieldBinding) placeholder() string {
	if b.spec.Descriptor.Example == nil {
		return ""
	}
	return fmt.Sprintf("Example: %v", b.spec.Descriptor.Example)
}

// collect coerces one binding to its submission value. present is false
// for optional fields left empty.
func (b *fieldBinding) collect() (any, bool, error) {
	name := b.spec.Descriptor.Name
	switch b.spec.Category {
	case schema.CategorySelect:
		if b.choice == nil {
			return nil, false, b.missing()
		}
		return b.choice, true, nil
	case schema.CategoryBoolean:
		return b.boolean, true, nil
	case schema.CategoryNumeric:
		text := strings.TrimSpace(b.text)
		if text == "" {
			return nil, false, b.missing()
		}
		number, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, false, &core.ValidationError{Field: name, Reason: "must be a number"}
		}
		return number, true, nil
	case schema.CategoryTags:
		tags := splitTags(b.text)
		if len(tags) == 0 {
			return nil, false, b.missing()
		}
		return tags, true, nil
	case schema.CategoryJSONBlob:
		text := strings.TrimSpace(b.text)
		if text == "" {
			return nil, false, b.missing()
		}
		var parsed any
		if err := json.Unmarshal([]byte(text), &parsed); err != nil {
			return nil, false, &core.ValidationError{Field: name, Reason: "invalid JSON format"}
		}
		return parsed, true, nil
	default:
		// text, multiline-text, upload
		if strings.TrimSpace(b.text) == "" {
			return nil, false, b.missing()
		}
		return b.text, true, nil
	}
}

// missing converts an absent value into a blocking error for required
// fields and a skip for optional ones.
func (b *fieldBinding) missing() error {
	if b.spec.Descriptor.Required {
		return &core.ValidationError{Reason: fmt.Sprintf("please enter %s", b.spec.Descriptor.Name)}
	}
	return nil
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
