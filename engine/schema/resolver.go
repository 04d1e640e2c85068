package schema

import (
	"fmt"
	"strings"
)

// FieldCategory is the input-control category a parameter renders as. The
// set is closed; resolution always lands on exactly one arm.
type FieldCategory int

const (
	CategoryText FieldCategory = iota
	CategorySelect
	CategoryBoolean
	CategoryNumeric
	CategoryMultilineText
	CategoryUpload
	CategoryTags
	CategoryJSONBlob
)

func (c FieldCategory) String() string {
	switch c {
	case CategoryText:
		return "text"
	case CategorySelect:
		return "select"
	case CategoryBoolean:
		return "boolean"
	case CategoryNumeric:
		return "numeric"
	case CategoryMultilineText:
		return "multiline-text"
	case CategoryUpload:
		return "upload"
	case CategoryTags:
		return "tags"
	case CategoryJSONBlob:
		return "json-blob"
	default:
		return fmt.Sprintf("FieldCategory(%d)", int(c))
	}
}

// Partition decides whether a field is always visible or collapsed behind
// the advanced-settings disclosure.
type Partition int

const (
	PartitionRequired Partition = iota
	PartitionOptional
)

// Option is one enumerated choice of a select field. The label is the
// stringified form of the value; the value keeps its declared scalar type
// so submissions carry what the schema declared.
type Option struct {
	Label string
	Value any
}

// FieldRenderSpec is the resolved rendering decision for one parameter.
// Derived and ephemeral; never persisted.
type FieldRenderSpec struct {
	Descriptor ParameterDescriptor
	Category   FieldCategory
	Partition  Partition
	Options    []Option
}

// uploadHints are the name substrings that mark a string parameter as
// carrying an uploaded asset URL.
var uploadHints = []string{"image", "avatar", "logo", "icon"}

// Resolve maps a parameter descriptor to its render spec.
//
// Option-bearing parameters always render as selects regardless of their
// declared base type; this override runs before the type switch and the
// ordering is load-bearing.
func Resolve(desc ParameterDescriptor) FieldRenderSpec {
	spec := FieldRenderSpec{Descriptor: desc, Partition: PartitionOptional}
	if desc.Required {
		spec.Partition = PartitionRequired
	}

	if desc.Type == "select" || len(desc.Options) > 0 {
		spec.Category = CategorySelect
		spec.Options = stringifyOptions(desc.Options)
		return spec
	}

	switch desc.Type {
	case "boolean":
		spec.Category = CategoryBoolean
	case "integer", "number", "uint32":
		spec.Category = CategoryNumeric
	case "textarea":
		spec.Category = CategoryMultilineText
	case "string":
		if isUploadName(desc.Name) {
			spec.Category = CategoryUpload
		} else {
			spec.Category = CategoryText
		}
	case "array":
		spec.Category = CategoryTags
	case "object":
		spec.Category = CategoryJSONBlob
	default:
		// Unknown declared types degrade to a plain text input.
		spec.Category = CategoryText
	}
	return spec
}

func isUploadName(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range uploadHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func stringifyOptions(options []any) []Option {
	out := make([]Option, 0, len(options))
	for _, opt := range options {
		out = append(out, Option{Label: fmt.Sprintf("%v", opt), Value: opt})
	}
	return out
}
