package model

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"
)

func TestItem_PlainStringDecoding(t *testing.T) {
	want := []Item{{ID: "Never", Label: "Never"}, {ID: "often", Label: "Often"}, {ID: "Rarely", Label: "Rarely"}}

	var fromJSON ScaleConfig
	if err := json.Unmarshal([]byte(`{"labels":["Never",{"id":"often","label":"Often"},{"label":"Rarely"}]}`), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}

	var fromYAML ScaleConfig
	if err := yaml.Unmarshal([]byte("labels:\n  - Never\n  - {id: often, label: Often}\n  - {label: Rarely}\n"), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}

	stored, err := bson.Marshal(bson.M{"labels": bson.A{
		"Never",
		bson.M{"id": "often", "label": "Often"},
		bson.M{"label": "Rarely"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	var fromBSON ScaleConfig
	if err := bson.Unmarshal(stored, &fromBSON); err != nil {
		t.Fatalf("bson: %v", err)
	}

	for name, got := range map[string][]Item{"json": fromJSON.Labels, "yaml": fromYAML.Labels, "bson": fromBSON.Labels} {
		if len(got) != len(want) {
			t.Errorf("%s: labels = %+v, want %+v", name, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: labels[%d] = %+v, want %+v", name, i, got[i], want[i])
			}
		}
	}
}
