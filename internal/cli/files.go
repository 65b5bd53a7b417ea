package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"formflow/internal/model"
)

// schemaDoc accepts a bare schema or a form document wrapping one
type schemaDoc struct {
	Title    string                  `json:"title" yaml:"title"`
	Schema   *model.FormSchema       `json:"schema" yaml:"schema"`
	Fields   []model.FieldDefinition `json:"fields" yaml:"fields"`
	Settings model.FormSettings      `json:"settings" yaml:"settings"`
}

func loadSchema(path string) (*model.FormSchema, error) {
	var doc schemaDoc
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	if doc.Schema != nil {
		return doc.Schema, nil
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("%s: no fields found", path)
	}
	return &model.FormSchema{Fields: doc.Fields, Settings: doc.Settings}, nil
}

func loadResponses(path string) (model.ResponseMap, error) {
	if path == "" {
		return model.ResponseMap{}, nil
	}
	var responses model.ResponseMap
	if err := decodeFile(path, &responses); err != nil {
		return nil, err
	}
	if responses == nil {
		responses = model.ResponseMap{}
	}
	return datesAsStrings(responses), nil
}

func loadSubmissions(path string) ([]model.Submission, error) {
	var subs []model.Submission
	if err := decodeFile(path, &subs); err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].Responses == nil {
			subs[i].Responses = model.ResponseMap{}
		}
		subs[i].Responses = datesAsStrings(subs[i].Responses)
	}
	return subs, nil
}

// datesAsStrings turns the time.Time values yaml.v3 produces for unquoted
// dates back into the strings a date field stores.
func datesAsStrings(r model.ResponseMap) model.ResponseMap {
	for k, v := range r {
		r[k] = dateValue(v)
	}
	return r
}

func dateValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		if t.Equal(t.Truncate(24*time.Hour)) && t.Location() == time.UTC {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339)
	case []any:
		for i := range t {
			t[i] = dateValue(t[i])
		}
	case map[string]any:
		for k := range t {
			t[k] = dateValue(t[k])
		}
	}
	return v
}

// decodeFile reads JSON by extension and YAML otherwise; "-" is stdin
func decodeFile(path string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, v)
	} else {
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
