package scenescroller

import "fmt"

// Options carries constructor options by name.
type Options map[string]any

// optionMarker is the type of the Required and Optional sentinels.
type optionMarker struct{ name string }

func (m *optionMarker) String() string { return m.name }

var (
	// Required marks a defaults entry that the caller must supply.
	Required = &optionMarker{"required"}
	// Optional marks a defaults entry that is left out of the parsed result
	// when the caller does not supply it.
	Optional = &optionMarker{"optional"}
)

// ParseOptions splits opts into the keys named by defaults (parsed) and
// everything else (rest). Each defaults value is either the default for that
// key, Required or Optional. A key counts as supplied when it is present in
// opts with a non-nil value. opts may be nil.
func ParseOptions(opts, defaults Options) (parsed, rest Options, err error) {
	parsed = make(Options, len(defaults))
	rest = make(Options, len(opts))
	for k, v := range opts {
		rest[k] = v
	}

	for _, key := range sortedKeys(defaults) {
		def := defaults[key]
		opt, ok := opts[key]
		if !ok || opt == nil {
			delete(rest, key)
			switch def {
			case Required:
				return nil, nil, fmt.Errorf("%w: %q", ErrRequiredOption, key)
			case Optional:
				continue
			default:
				parsed[key] = def
				continue
			}
		}
		parsed[key] = opt
		delete(rest, key)
	}
	return parsed, rest, nil
}
