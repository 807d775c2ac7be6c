// Package store is a registry of blob store factories.
// Implementations register themselves in init functions,
// and callers build them by name from a configuration map,
// typically decoded from JSON.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/bobg/blobstore"
)

// Factory builds a Client from its configuration.
type Factory func(context.Context, map[string]interface{}) (blobstore.Client, error)

var registry = make(map[string]Factory)

// Register makes a Factory available to Create under the given key.
func Register(key string, f Factory) {
	registry[key] = f
}

// Create builds a Client with the factory registered under key.
func Create(ctx context.Context, key string, conf map[string]interface{}) (blobstore.Client, error) {
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("key %s not found in registry", key)
	}
	return f(ctx, conf)
}

// FromConfig builds a Client from a config map
// whose "type" entry names the registered factory.
func FromConfig(ctx context.Context, conf map[string]interface{}) (blobstore.Client, error) {
	typ, ok := conf["type"].(string)
	if !ok {
		return nil, errors.New(`config missing "type" parameter`)
	}
	return Create(ctx, typ, conf)
}

// Nested builds the Client described by conf's "nested" entry.
// Wrapping stores use it to construct the store they wrap.
func Nested(ctx context.Context, conf map[string]interface{}) (blobstore.Client, error) {
	nested, ok := conf["nested"].(map[string]interface{})
	if !ok {
		return nil, errors.New(`missing "nested" parameter`)
	}
	if _, ok := nested["type"].(string); !ok {
		return nil, errors.New(`"nested" parameter missing "type"`)
	}
	s, err := FromConfig(ctx, nested)
	return s, errors.Wrap(err, "creating nested store")
}

// Int looks up an integer parameter in conf.
// It reports false if key is absent,
// and an error if key is present but is not an integral number.
// JSON decoding produces float64 or json.Number for every number,
// so those are accepted along with the Go integer types.
func Int(conf map[string]interface{}, key string) (int, bool, error) {
	v, ok := conf[key]
	if !ok {
		return 0, false, nil
	}
	switch v := v.(type) {
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		return integral(key, v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, true, errors.Wrapf(err, "parameter %q must be a number", key)
		}
		return integral(key, f)
	}
	return 0, true, fmt.Errorf("parameter %q must be a number, got %T", key, v)
}

func integral(key string, f float64) (int, bool, error) {
	if f != math.Trunc(f) {
		return 0, true, fmt.Errorf("parameter %q must be an integer, got %v", key, f)
	}
	return int(f), true, nil
}

// Bool looks up a boolean parameter in conf.
// It reports false if key is absent,
// and an error if key is present but is not a bool.
func Bool(conf map[string]interface{}, key string) (bool, bool, error) {
	v, ok := conf[key]
	if !ok {
		return false, false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, true, fmt.Errorf("parameter %q must be a bool, got %T", key, v)
	}
	return b, true, nil
}
