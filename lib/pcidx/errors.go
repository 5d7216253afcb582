package pcidx

import "fmt"

// ConfigError reports a single invalid Structure configuration field.
// Construction collects every violation rather than stopping at the
// first (see New).
type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("pcidx: invalid %s: %s", e.Field, e.Reason)
}

func configErr(field, format string, args ...any) error {
	return ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedSplit3DError is returned by SubsetBBox when asked to split a
// 3D structure; octree splitting is explicitly unspecified.
type UnsupportedSplit3DError struct{}

func (UnsupportedSplit3DError) Error() string {
	return "pcidx: octree split not yet supported"
}
