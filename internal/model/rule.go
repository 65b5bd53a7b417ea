package model

// Operator compares a source field's response with a rule value
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not-equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not-contains"
	OpGreaterThan Operator = "greater-than"
	OpLessThan    Operator = "less-than"
	OpIsEmpty     Operator = "is-empty"
	OpIsNotEmpty  Operator = "is-not-empty"
)

// Known reports whether the evaluator understands op
func (op Operator) Known() bool {
	switch op {
	case OpEquals, OpNotEquals, OpContains, OpNotContains,
		OpGreaterThan, OpLessThan, OpIsEmpty, OpIsNotEmpty:
		return true
	}
	return false
}

// ConditionalRule is a predicate over an earlier field's response
type ConditionalRule struct {
	SourceFieldID string   `json:"sourceFieldId" bson:"sourceFieldId" yaml:"sourceFieldId"`
	Operator      Operator `json:"operator" bson:"operator" yaml:"operator"`
	Value         any      `json:"value,omitempty" bson:"value,omitempty" yaml:"value,omitempty"` // scalar or list
}

// Combinator joins the results of a rule set
type Combinator string

const (
	CombineAll Combinator = "all"
	CombineAny Combinator = "any"
)

// Action is what a matched rule set does to the field
type Action string

const (
	ActionShow Action = "show"
	ActionHide Action = "hide"
)

// ConditionalConfig is the visibility rule set of a field
type ConditionalConfig struct {
	Enabled bool              `json:"enabled" bson:"enabled" yaml:"enabled"`
	Action  Action            `json:"action" bson:"action" yaml:"action"`
	Combine Combinator        `json:"combine" bson:"combine" yaml:"combine"`
	Rules   []ConditionalRule `json:"rules" bson:"rules" yaml:"rules"`
}

// JumpAction is the navigation effect of picking an option
type JumpAction string

const (
	JumpContinue JumpAction = "continue"
	JumpTo       JumpAction = "jump"
	JumpSubmit   JumpAction = "submit"
)

// JumpRule overrides navigation for one option of a choice field
type JumpRule struct {
	OptionValue     string     `json:"optionValue" bson:"optionValue" yaml:"optionValue"`
	Action          JumpAction `json:"action" bson:"action" yaml:"action"`
	TargetSectionID string     `json:"targetSectionId,omitempty" bson:"targetSectionId,omitempty" yaml:"targetSectionId,omitempty"`
}
