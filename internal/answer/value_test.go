package answer_test

import (
	"encoding/json"
	"testing"

	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b answer.Value
		want bool
	}{
		{"same string", answer.String("Paris"), answer.String("Paris"), true},
		{"case matters", answer.String("paris"), answer.String("Paris"), false},
		{"empty vs value", answer.String(""), answer.String("Paris"), false},
		{"list order ignored", answer.List("a", "b"), answer.List("b", "a"), true},
		{"list missing item", answer.List("a"), answer.List("a", "b"), false},
		{"list extra item", answer.List("a", "b", "c"), answer.List("a", "b"), false},
		{"string vs list", answer.String("a"), answer.List("a"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJSONShapes(t *testing.T) {
	t.Run("StringAndList", func(t *testing.T) {
		var payload struct {
			One  answer.Value `json:"one"`
			Many answer.Value `json:"many"`
		}
		if err := json.Unmarshal([]byte(`{"one":"x","many":["a","b"]}`), &payload); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if payload.One.IsList() || payload.One.Text() != "x" {
			t.Errorf("one = %+v", payload.One)
		}
		if !payload.Many.IsList() || len(payload.Many.Items()) != 2 {
			t.Errorf("many = %+v", payload.Many)
		}

		out, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != `{"one":"x","many":["a","b"]}` {
			t.Errorf("marshal = %s", out)
		}
	})

	t.Run("BooleanBecomesString", func(t *testing.T) {
		var v answer.Value
		if err := json.Unmarshal([]byte(`true`), &v); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !v.Equal(answer.String("true")) {
			t.Errorf("got %+v", v)
		}
	})

	t.Run("RejectsNumbers", func(t *testing.T) {
		var v answer.Value
		if err := json.Unmarshal([]byte(`42`), &v); err == nil {
			t.Error("expected error for numeric answer")
		}
	})

	t.Run("ZeroMarshalsEmptyString", func(t *testing.T) {
		out, _ := json.Marshal(answer.Value{})
		if string(out) != `""` {
			t.Errorf("zero value marshals to %s", out)
		}
	})
}
