package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type categoryHolder struct {
	Category string `validate:"omitempty,category"`
	Filter   string `validate:"omitempty,category_filter"`
}

func TestValidate_Category(t *testing.T) {
	assert.NoError(t, Validate(&categoryHolder{}))
	assert.NoError(t, Validate(&categoryHolder{Category: "Amazing Pools"}))
	assert.Error(t, Validate(&categoryHolder{Category: "Beaches"}))
	assert.Error(t, Validate(&categoryHolder{Category: "all"}))
}

type patchHolder struct {
	Location *string `validate:"omitempty,min=1,notblank"`
}

func TestValidate_NotBlank(t *testing.T) {
	str := func(s string) *string { return &s }

	assert.NoError(t, Validate(&patchHolder{}))
	assert.NoError(t, Validate(&patchHolder{Location: str("Paris")}))
	assert.Error(t, Validate(&patchHolder{Location: str("")}))
	assert.Error(t, Validate(&patchHolder{Location: str("   ")}))
}

func TestValidate_CategoryFilter(t *testing.T) {
	assert.NoError(t, Validate(&categoryHolder{Filter: "all"}))
	assert.NoError(t, Validate(&categoryHolder{Filter: "Boats"}))
	assert.Error(t, Validate(&categoryHolder{Filter: "boats"}))
}
