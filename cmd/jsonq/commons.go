package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/midbel/jsonq/json"
)

type InputOptions struct {
	Yaml     bool
	Extended bool
}

type OutputOptions struct {
	Compact bool
	OutFile string
}

func loadDocument(file string, options InputOptions) (any, error) {
	var r io.Reader = os.Stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if options.Yaml {
		buf, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		var doc any
		if err := yaml.Unmarshal(buf, &doc); err != nil {
			return nil, err
		}
		return normalize(doc), nil
	}
	if options.Extended {
		return json.Parse5(r)
	}
	return json.Parse(r)
}

// normalize rewrites the value tree produced by the yaml decoder into
// the shape the query engine expects.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for k := range v {
			v[k] = normalize(v[k])
		}
		return v
	case map[any]any:
		obj := make(map[string]any, len(v))
		for k, a := range v {
			obj[fmt.Sprint(k)] = normalize(a)
		}
		return obj
	case []any:
		for i := range v {
			v[i] = normalize(v[i])
		}
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return v
	}
}

func writeResult(value any, options OutputOptions) error {
	var w io.Writer = os.Stdout
	if options.OutFile != "" {
		f, err := os.Create(options.OutFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	ws := json.NewWriter(w)
	ws.Compact = options.Compact
	if err := ws.Write(value); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
