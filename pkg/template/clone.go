package template

// Clone returns a deep copy of the template. The generator always works
// on a clone so the caller's template is never mutated.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}

	out := &Template{
		AWSTemplateFormatVersion: t.AWSTemplateFormatVersion,
		Transform:                deepCopyValue(t.Transform),
		Description:              t.Description,
		Globals:                  deepCopyMap(t.Globals),
		Parameters:               deepCopyMap(t.Parameters),
		Extra:                    deepCopyMap(t.Extra),
	}

	if t.Resources != nil {
		out.Resources = make(map[string]*Resource, len(t.Resources))
		for id, res := range t.Resources {
			out.Resources[id] = res.Clone()
		}
	}

	if t.Outputs != nil {
		out.Outputs = make(map[string]*Output, len(t.Outputs))
		for key, o := range t.Outputs {
			out.Outputs[key] = &Output{
				Description: o.Description,
				Value:       deepCopyValue(o.Value),
				Extra:       deepCopyMap(o.Extra),
			}
		}
	}

	return out
}

// Clone returns a deep copy of the resource.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	return &Resource{
		Type:       r.Type,
		Properties: deepCopyMap(r.Properties),
		Extra:      deepCopyMap(r.Extra),
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		// Scalars decoded from YAML are immutable value types.
		return val
	}
}
