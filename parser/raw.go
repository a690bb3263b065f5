package parser

// Raw returns the body unchanged.
type Raw struct{}

// Parse returns data.
func (Raw) Parse(data []byte) (any, error) {
	return data, nil
}
