package message

// Params contains the named values carried by a Message.
type Params map[string]any

// With returns a Params reference holding the value addressed using
// the specified key.
func (p Params) With(key string, value any) Params {
	if p == nil {
		p = make(Params)
	}

	p[key] = value

	return p
}

// Merge merges the other Params provided in input with the current map.
// Values in other win over the ones already present.
func (p Params) Merge(other Params) Params {
	if p == nil {
		p = make(Params, len(other))
	}

	for k, v := range other {
		p[k] = v
	}

	return p
}
