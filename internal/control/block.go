package control

import (
	"fmt"

	"github.com/strandscfd/strands2d/internal/errs"
)

// String returns the string value at key, or an error if absent or
// not a string/bare-word.
func (b Block) String(key string) (string, error) {
	v, ok := b[key]
	if !ok {
		return "", errs.New(errs.Config, fmt.Sprintf("missing required key %q", key))
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case float64:
		return fmt.Sprintf("%g", s), nil
	default:
		return "", errs.New(errs.Config, fmt.Sprintf("key %q is not a string", key))
	}
}

// StringOr is String with a default for a missing key.
func (b Block) StringOr(key, def string) string {
	s, err := b.String(key)
	if err != nil {
		return def
	}
	return s
}

// Float returns the numeric value at key.
func (b Block) Float(key string) (float64, error) {
	v, ok := b[key]
	if !ok {
		return 0, errs.New(errs.Config, fmt.Sprintf("missing required key %q", key))
	}
	f, ok := v.(float64)
	if !ok {
		return 0, errs.New(errs.Config, fmt.Sprintf("key %q is not numeric", key))
	}
	return f, nil
}

// FloatOr is Float with a default for a missing key.
func (b Block) FloatOr(key string, def float64) float64 {
	f, err := b.Float(key)
	if err != nil {
		return def
	}
	return f
}

// Bool returns the boolean value at key, defaulting to def if absent.
func (b Block) Bool(key string, def bool) bool {
	v, ok := b[key]
	if !ok {
		return def
	}
	if bv, ok := v.(bool); ok {
		return bv
	}
	return def
}

// Sub returns the nested block at key.
func (b Block) Sub(key string) (Block, error) {
	v, ok := b[key]
	if !ok {
		return nil, errs.New(errs.Config, fmt.Sprintf("missing required block %q", key))
	}
	sub, ok := v.(Block)
	if !ok {
		return nil, errs.New(errs.Config, fmt.Sprintf("key %q is not a block", key))
	}
	return sub, nil
}
