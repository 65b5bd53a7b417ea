package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gopkg.in/yaml.v3"
)

// FieldType is the closed set of field kinds a form can contain
type FieldType string

const (
	FieldShortText   FieldType = "short-text"
	FieldLongText    FieldType = "long-text"
	FieldNumeric     FieldType = "numeric"
	FieldChoice      FieldType = "choice-single"
	FieldMultiChoice FieldType = "choice-multi"
	FieldDropdown    FieldType = "dropdown"
	FieldDate        FieldType = "date"
	FieldFile        FieldType = "file"
	FieldMatrix      FieldType = "matrix"
	FieldRating      FieldType = "rating"
	FieldScale       FieldType = "scale"
	FieldSection     FieldType = "section"
	FieldHeading     FieldType = "heading"
	FieldImage       FieldType = "image"
)

// AllFieldTypes lists every field kind. Per-kind handler tables are checked against it.
var AllFieldTypes = []FieldType{
	FieldShortText, FieldLongText, FieldNumeric,
	FieldChoice, FieldMultiChoice, FieldDropdown,
	FieldDate, FieldFile, FieldMatrix, FieldRating, FieldScale,
	FieldSection, FieldHeading, FieldImage,
}

// Known reports whether t is one of AllFieldTypes
func (t FieldType) Known() bool {
	for _, k := range AllFieldTypes {
		if k == t {
			return true
		}
	}
	return false
}

// IsChoice reports whether the field offers a fixed option list
func (t FieldType) IsChoice() bool {
	return t == FieldChoice || t == FieldMultiChoice || t == FieldDropdown
}

// IsText reports whether the field collects free text
func (t FieldType) IsText() bool {
	return t == FieldShortText || t == FieldLongText
}

// IsInput reports whether the field collects a response at all.
// Sections, headings and images are layout only.
func (t FieldType) IsInput() bool {
	switch t {
	case FieldSection, FieldHeading, FieldImage:
		return false
	}
	return t.Known()
}

// Item is a matrix row/column or a scale statement/label.
// Stored JSON, YAML or BSON may hold a plain string, which decodes as {id: s, label: s}.
type Item struct {
	ID    string `json:"id" bson:"id" yaml:"id"`
	Label string `json:"label" bson:"label" yaml:"label"`
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.ID, i.Label = s, s
		return nil
	}
	type plain Item
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = Item(p)
	i.fill()
	return nil
}

func (i *Item) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		i.ID, i.Label = node.Value, node.Value
		return nil
	}
	type plain Item
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*i = Item(p)
	i.fill()
	return nil
}

func (i *Item) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	if s, ok := raw.StringValueOK(); ok {
		i.ID, i.Label = s, s
		return nil
	}
	type plain Item
	var p plain
	if err := raw.Unmarshal(&p); err != nil {
		return err
	}
	*i = Item(p)
	i.fill()
	return nil
}

func (i *Item) fill() {
	if i.ID == "" {
		i.ID = i.Label
	}
	if i.Label == "" {
		i.Label = i.ID
	}
}

// Matches reports whether a response value names this item by id or label
func (i Item) Matches(v string) bool {
	return v == i.ID || v == i.Label
}

// MatrixConfig holds matrix rows and columns
type MatrixConfig struct {
	Rows     []Item `json:"rows" bson:"rows" yaml:"rows"`
	Columns  []Item `json:"columns" bson:"columns" yaml:"columns"`
	Multiple bool   `json:"multiple,omitempty" bson:"multiple,omitempty" yaml:"multiple,omitempty"` // checkbox cells
}

// RatingConfig configures a star/heart rating
type RatingConfig struct {
	Max  int    `json:"max" bson:"max" yaml:"max"`
	Icon string `json:"icon,omitempty" bson:"icon,omitempty" yaml:"icon,omitempty"`
}

// ScaleConfig configures a likert grid: each statement is answered on the label scale
type ScaleConfig struct {
	Statements []Item `json:"statements" bson:"statements" yaml:"statements"`
	Labels     []Item `json:"labels" bson:"labels" yaml:"labels"`
	Min        int    `json:"min,omitempty" bson:"min,omitempty" yaml:"min,omitempty"`
	Max        int    `json:"max,omitempty" bson:"max,omitempty" yaml:"max,omitempty"`
}

// SectionConfig configures a section page
type SectionConfig struct {
	Description string `json:"description,omitempty" bson:"description,omitempty" yaml:"description,omitempty"`
	AllowBack   bool   `json:"allowBack" bson:"allowBack" yaml:"allowBack"`
}

// FieldDefinition is one entry of a form schema
type FieldDefinition struct {
	ID          string    `json:"id" bson:"id" yaml:"id"`
	Type        FieldType `json:"type" bson:"type" yaml:"type"`
	Label       string    `json:"label" bson:"label" yaml:"label"`
	Required    bool      `json:"required" bson:"required" yaml:"required"`
	Placeholder string    `json:"placeholder,omitempty" bson:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	Options []string       `json:"options,omitempty" bson:"options,omitempty" yaml:"options,omitempty"` // choice kinds
	Matrix  *MatrixConfig  `json:"matrix,omitempty" bson:"matrix,omitempty" yaml:"matrix,omitempty"`
	Rating  *RatingConfig  `json:"rating,omitempty" bson:"rating,omitempty" yaml:"rating,omitempty"`
	Scale   *ScaleConfig   `json:"scale,omitempty" bson:"scale,omitempty" yaml:"scale,omitempty"`
	Section *SectionConfig `json:"section,omitempty" bson:"section,omitempty" yaml:"section,omitempty"`

	Conditional *ConditionalConfig `json:"conditional,omitempty" bson:"conditional,omitempty" yaml:"conditional,omitempty"`
	Jumps       []JumpRule         `json:"jumps,omitempty" bson:"jumps,omitempty" yaml:"jumps,omitempty"`
	Grading     *GradingConfig     `json:"grading,omitempty" bson:"grading,omitempty" yaml:"grading,omitempty"`
}

// RatingLimit is the largest rating maximum a schema may configure
const RatingLimit = 10

// MaxRating is the configured rating maximum, 5 when unset, never above RatingLimit
func (f *FieldDefinition) MaxRating() int {
	if f.Rating == nil || f.Rating.Max <= 0 {
		return 5
	}
	return min(f.Rating.Max, RatingLimit)
}

// AllowsBack reports whether Previous is permitted while this section is active
func (f *FieldDefinition) AllowsBack() bool {
	return f.Section != nil && f.Section.AllowBack
}

// FormSettings are form-level options
type FormSettings struct {
	SubmitLabel  string `json:"submitLabel,omitempty" bson:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	ShowProgress bool   `json:"showProgress,omitempty" bson:"showProgress,omitempty" yaml:"showProgress,omitempty"`
}

// FormSchema is the ordered field list plus settings. Order is significant.
type FormSchema struct {
	Fields   []FieldDefinition `json:"fields" bson:"fields" yaml:"fields"`
	Settings FormSettings      `json:"settings" bson:"settings" yaml:"settings"`
}

// Field looks up a field by id
func (s *FormSchema) Field(id string) (*FieldDefinition, int) {
	for i := range s.Fields {
		if s.Fields[i].ID == id {
			return &s.Fields[i], i
		}
	}
	return nil, -1
}

// HasSections reports whether section-based navigation is active,
// which is the case as soon as one section field exists.
func (s *FormSchema) HasSections() bool {
	for i := range s.Fields {
		if s.Fields[i].Type == FieldSection {
			return true
		}
	}
	return false
}

// Form is a persisted schema owned by a user
type Form struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	OwnerID     string     `json:"ownerId" bson:"ownerId"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Schema      FormSchema `json:"schema" bson:"schema"`
	Published   bool       `json:"published" bson:"published"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}
