package inspect

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// =============================================================================
// ServiceSpec - Extraction Output
// =============================================================================

// ServiceSpec is the curated subset of an inspection record that becomes one
// compose service. It is built once by Extract and only read afterwards.
type ServiceSpec struct {
	Name          string   `json:"name"`
	Image         string   `json:"image"`
	RestartPolicy string   `json:"restart_policy"`
	Networks      []string `json:"networks"`
	Ports         []string `json:"ports"`
	Volumes       []string `json:"volumes"`
	Environment   []string `json:"environment"`
}

// =============================================================================
// Loading
// =============================================================================

// Load parses raw inspection output and selects the record to extract from.
// `docker inspect` emits an array; only its first element is consulted.
// A bare object is accepted as the record itself.
func Load(data []byte) (gjson.Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return gjson.Result{}, NewFieldError("", "inspection input is empty", ErrEmptyInput)
	}
	if err := checkDepth(data, MaxDepth); err != nil {
		return gjson.Result{}, NewFieldError("", "invalid JSON: "+err.Error(), ErrInvalidJSON)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, NewFieldError("", "invalid JSON", ErrInvalidJSON)
	}

	root := gjson.ParseBytes(data)
	switch {
	case root.IsObject():
		return root, nil
	case root.IsArray():
		items := root.Array()
		if len(items) == 0 {
			return gjson.Result{}, NewFieldError("", "inspection array is empty", ErrNoRecord)
		}
		first := items[0]
		if !first.IsObject() {
			return gjson.Result{}, NewFieldError("[0]", "expected object, got "+typeName(first), ErrWrongType)
		}
		return first, nil
	default:
		return gjson.Result{}, NewFieldError("", "top-level value is "+typeName(root), ErrUnexpectedRoot)
	}
}

// =============================================================================
// Extraction
// =============================================================================

// Extract builds a ServiceSpec from one inspection record.
// Every field is required; the first missing or mistyped field fails the whole
// extraction and no partial spec is returned.
func Extract(record gjson.Result) (*ServiceSpec, error) {
	name, err := stringAt(record, "Name")
	if err != nil {
		return nil, err
	}
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return nil, NewFieldError("Name", "container name is empty", ErrMissingField)
	}

	image, err := stringAt(record, "Config", "Image")
	if err != nil {
		return nil, err
	}

	restart, err := stringAt(record, "HostConfig", "RestartPolicy", "Name")
	if err != nil {
		return nil, err
	}

	networks, err := objectAt(record, "NetworkSettings", "Networks")
	if err != nil {
		return nil, err
	}

	ports, err := objectAt(record, "NetworkSettings", "Ports")
	if err != nil {
		return nil, err
	}

	mounts, err := arrayAt(record, "Mounts")
	if err != nil {
		return nil, err
	}
	volumes := make([]string, 0, len(mounts))
	for i, m := range mounts {
		volume, err := mountVolume(m, fmt.Sprintf("Mounts[%d]", i))
		if err != nil {
			return nil, err
		}
		volumes = append(volumes, volume)
	}

	env, err := arrayAt(record, "Config", "Env")
	if err != nil {
		return nil, err
	}
	environment := make([]string, 0, len(env))
	for i, e := range env {
		if e.Type != gjson.String {
			return nil, wrongType(fmt.Sprintf("Config.Env[%d]", i), "string", e)
		}
		environment = append(environment, e.Str)
	}

	return &ServiceSpec{
		Name:          name,
		Image:         image,
		RestartPolicy: restart,
		Networks:      objectKeys(networks),
		Ports:         objectKeys(ports),
		Volumes:       volumes,
		Environment:   environment,
	}, nil
}

// mountVolume formats one Mounts entry as source:destination.
func mountVolume(m gjson.Result, path string) (string, error) {
	if !m.IsObject() {
		return "", wrongType(path, "object", m)
	}
	source, err := stringAt(m, "Source")
	if err != nil {
		return "", prefixPath(path, err)
	}
	destination, err := stringAt(m, "Destination")
	if err != nil {
		return "", prefixPath(path, err)
	}
	return source + ":" + destination, nil
}

// =============================================================================
// Typed Accessors
// =============================================================================

// lookup walks a fixed path of object keys.
func lookup(obj gjson.Result, path ...string) (gjson.Result, error) {
	current := obj
	for i, key := range path {
		if !current.IsObject() {
			return gjson.Result{}, wrongType(strings.Join(path[:i], "."), "object", current)
		}
		next := child(current, key)
		if !next.Exists() {
			return gjson.Result{}, NewFieldError(strings.Join(path[:i+1], "."), "field is missing", ErrMissingField)
		}
		current = next
	}
	return current, nil
}

func stringAt(obj gjson.Result, path ...string) (string, error) {
	v, err := lookup(obj, path...)
	if err != nil {
		return "", err
	}
	if v.Type != gjson.String {
		return "", wrongType(strings.Join(path, "."), "string", v)
	}
	return v.Str, nil
}

func objectAt(obj gjson.Result, path ...string) (gjson.Result, error) {
	v, err := lookup(obj, path...)
	if err != nil {
		return gjson.Result{}, err
	}
	if !v.IsObject() {
		return gjson.Result{}, wrongType(strings.Join(path, "."), "object", v)
	}
	return v, nil
}

func arrayAt(obj gjson.Result, path ...string) ([]gjson.Result, error) {
	v, err := lookup(obj, path...)
	if err != nil {
		return nil, err
	}
	if !v.IsArray() {
		return nil, wrongType(strings.Join(path, "."), "array", v)
	}
	return v.Array(), nil
}

func wrongType(path, want string, got gjson.Result) *FieldError {
	return NewFieldError(path, fmt.Sprintf("expected %s, got %s", want, typeName(got)), ErrWrongType)
}

// prefixPath rewrites a FieldError path relative to an enclosing element.
func prefixPath(prefix string, err error) error {
	fe, ok := err.(*FieldError)
	if !ok {
		return err
	}
	path := prefix
	if fe.Path != "" {
		path = prefix + "." + fe.Path
	}
	return NewFieldError(path, fe.Message, fe.Err)
}
