package query

import (
	"io"

	"github.com/midbel/jsonq/json"
)

// Path is a compiled query expression ready to be applied to any
// number of documents.
type Path struct {
	text  string
	steps []Step
}

func Parse(text string) (*Path, error) {
	tokens, err := decomposePath(text)
	if err != nil {
		return nil, err
	}
	p := Path{
		text: text,
	}
	for _, tok := range tokens {
		steps, err := classify(tok)
		if err != nil {
			return nil, err
		}
		p.steps = append(p.steps, steps...)
	}
	return &p, nil
}

func (p *Path) String() string {
	return p.text
}

// Apply resolves the path against doc. Navigation into missing or
// mismatched structure gives null; only malformed expressions give
// errors.
func (p *Path) Apply(doc any) (any, error) {
	return p.applyAt(doc, -1)
}

// ApplyAt behaves like Apply but starts from element at of doc when at
// is not negative and doc is an array.
func (p *Path) ApplyAt(doc any, at int) (any, error) {
	return p.applyAt(doc, at)
}

func (p *Path) applyAt(doc any, at int) (any, error) {
	if at >= 0 {
		arr, ok := doc.([]any)
		if !ok || at >= len(arr) {
			return nil, nil
		}
		doc = arr[at]
	}
	var err error
	for _, s := range p.steps {
		doc, err = s.apply(doc)
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func evalPath(doc any, at int, path string) (any, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.applyAt(doc, at)
}

// Eval parses path and resolves it against doc in one call.
func Eval(doc any, path string) (any, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.Apply(doc)
}

// Find reads a json document from r and resolves path against it.
func Find(r io.Reader, path string) (any, error) {
	doc, err := json.Parse(r)
	if err != nil {
		return nil, err
	}
	return Eval(doc, path)
}
