package validation

import (
	"errors"
	"testing"

	"parttrack/apperror"
)

type line struct {
	Description string `json:"description" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
}

type request struct {
	Kind  string `json:"kind" validate:"oneof=order design"`
	Lines []line `json:"lines" validate:"required,min=1,dive"`
}

func TestStruct(t *testing.T) {
	if err := Struct(request{Kind: "order", Lines: []line{{Description: "Bolt", Quantity: 1}}}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	err := Struct(request{Kind: "estimate", Lines: []line{{Description: "", Quantity: 0}}})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("not an *apperror.Error: %T", err)
	}
	for _, field := range []string{"kind", "lines[0].description", "lines[0].quantity"} {
		if _, ok := ae.Fields[field]; !ok {
			t.Errorf("missing field %q in %v", field, ae.Fields)
		}
	}
}

func TestStructEmptySlice(t *testing.T) {
	err := Struct(request{Kind: "design"})
	var ae *apperror.Error
	if !errors.As(err, &ae) || ae.Fields["lines"] == "" {
		t.Fatalf("err = %v, want lines field error", err)
	}
}
