package query

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/midbel/jsonq/json"
)

// Document wraps a parsed json value and offers typed accessors on
// top of path evaluation. Accessors never mutate the wrapped value.
type Document struct {
	root any
}

func NewDocument(root any) *Document {
	return &Document{
		root: root,
	}
}

func ParseDocument(r io.Reader) (*Document, error) {
	root, err := json.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(root), nil
}

func ParseDocumentString(str string) (*Document, error) {
	return ParseDocument(strings.NewReader(str))
}

func (d *Document) Root() any {
	return d.root
}

func (d *Document) Get(path string) (any, error) {
	return Eval(d.root, path)
}

// GetString resolves path and renders the result as text: scalars are
// converted, containers serialized and null gives the empty string.
func (d *Document) GetString(path string) (string, error) {
	v, err := d.Get(path)
	if err != nil {
		return "", err
	}
	switch v.(type) {
	case nil:
		return "", nil
	case []any, map[string]any:
		return json.Marshal(v)
	default:
		return asText(v), nil
	}
}

func (d *Document) GetInt(path string) (int64, error) {
	f, err := d.GetFloat(path)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func (d *Document) GetFloat(path string) (float64, error) {
	v, err := d.Get(path)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, nil
		}
		return f, nil
	default:
		return 0, nil
	}
}

func (d *Document) GetBool(path string) (bool, error) {
	v, err := d.Get(path)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

func (d *Document) GetTime(path string) (time.Time, error) {
	v, err := d.Get(path)
	if err != nil {
		return time.Time{}, err
	}
	str, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q does not evaluate to a date time", ErrLiteral, path)
	}
	return parseDateTime(str)
}

// RequiredString behaves like GetString but fails when the path
// resolves to null or to a container.
func (d *Document) RequiredString(path string) (string, error) {
	v, err := d.Get(path)
	if err != nil {
		return "", err
	}
	if !hasValue(v) {
		return "", fmt.Errorf("%q does not evaluate to a value", path)
	}
	return asText(v), nil
}

func (d *Document) RequiredInt(path string) (int64, error) {
	f, err := d.RequiredFloat(path)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func (d *Document) RequiredFloat(path string) (float64, error) {
	v, err := d.Get(path)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%q does not evaluate to a number", path)
	}
	return f, nil
}

func (d *Document) RequiredBool(path string) (bool, error) {
	v, err := d.Get(path)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%q does not evaluate to a boolean", path)
	}
	return b, nil
}

// Put sets a top level key when the document root is an object. A nil
// root becomes an object first; any other root is left untouched.
func (d *Document) Put(key string, value any) *Document {
	if d.root == nil {
		d.root = make(map[string]any)
	}
	if obj, ok := d.root.(map[string]any); ok {
		obj[key] = value
	}
	return d
}

func (d *Document) String() string {
	str, err := json.Marshal(d.root)
	if err != nil {
		return ""
	}
	return str
}

func (d *Document) Pretty() string {
	var (
		buf strings.Builder
		ws  = json.NewWriter(&buf)
	)
	if err := ws.Write(d.root); err != nil {
		return ""
	}
	return buf.String()
}
