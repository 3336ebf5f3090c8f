package descriptor

// FieldSpec describes one descriptor field: its key and the check its value
// must pass once decoded from JSON.
type FieldSpec struct {
	Name     string
	Validate func(value any) bool
}

// Schema is the set of fields a descriptor needs before an instance can be
// assembled from it.
type Schema struct {
	Name   string
	Fields []FieldSpec
}

// CheckResult reports how a decoded descriptor object measures up against a
// Schema.
type CheckResult struct {
	Present []string
	Missing []string
	Invalid []string
}

// Complete is true when no field is missing or invalid.
func (r CheckResult) Complete() bool {
	return len(r.Missing) == 0 && len(r.Invalid) == 0
}

// Check evaluates a decoded JSON object against the schema. A key holding
// JSON null counts as missing.
func (s Schema) Check(obj map[string]any) CheckResult {
	var result CheckResult
	for _, spec := range s.Fields {
		v, ok := obj[spec.Name]
		if !ok || v == nil {
			result.Missing = append(result.Missing, spec.Name)
			continue
		}
		if spec.Validate != nil && !spec.Validate(v) {
			result.Invalid = append(result.Invalid, spec.Name)
			continue
		}
		result.Present = append(result.Present, spec.Name)
	}
	return result
}

// DescriptorSchema returns the schema every descriptor file must satisfy.
func DescriptorSchema() Schema {
	isString := func(v any) bool {
		_, ok := v.(string)
		return ok
	}
	isBool := func(v any) bool {
		_, ok := v.(bool)
		return ok
	}
	isStringList := func(v any) bool {
		items, ok := v.([]any)
		if !ok {
			return false
		}
		for _, it := range items {
			if _, ok := it.(string); !ok {
				return false
			}
		}
		return true
	}

	return Schema{
		Name: "core-logic",
		Fields: []FieldSpec{
			{Name: "repository", Validate: isString},
			{Name: "function", Validate: isString},
			{Name: "executable_code_beyond_this_function", Validate: isBool},
			{Name: "latent_cognitive_equivalent", Validate: isString},
			{Name: "attractors", Validate: isStringList},
		},
	}
}
