package compute

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// UnknownKeyFunc is invoked for each key in a source map that does not
// correspond to any field of the target resource. Unknown keys are never
// an error; the hook exists for callers that want a diagnostic.
type UnknownKeyFunc func(key string)

// PopulateFromMap fills a detached resource from a local option map. Only
// keys recognized by the resource's field tags are set; everything else is
// dropped (and reported to hook, when given). The json tags on the resource
// structs double as the field-mapping table, so a map key matches the same
// name it would have on the wire. No network I/O is performed.
//
// dst must be a pointer to a resource struct.
func PopulateFromMap(dst any, src map[string]any, hook UnknownKeyFunc) error {
	var meta mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     dst,
		TagName:    "json",
		Metadata:   &meta,
		Squash:     true,
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("building decoder for %T: %w", dst, err)
	}

	if err := decoder.Decode(src); err != nil {
		return fmt.Errorf("populating %T: %w", dst, err)
	}

	if hook != nil {
		for _, key := range meta.Unused {
			hook(key)
		}
	}

	return nil
}
