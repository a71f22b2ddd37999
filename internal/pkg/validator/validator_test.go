package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Rating    int    `validate:"gte=1,lte=5"`
	CheckIn   string `validate:"required,datetime=2006-01-02"`
	GuestsMax int    `validate:"min=1"`
}

func TestValidateReportsFailedTags(t *testing.T) {
	errs := Validate(sample{Rating: 9, CheckIn: "tomorrow", GuestsMax: 0})

	assert.Equal(t, "lte", errs["rating"])
	assert.Equal(t, "datetime", errs["check_in"])
	assert.Equal(t, "min", errs["guests_max"])
}

func TestValidatePasses(t *testing.T) {
	assert.Nil(t, Validate(sample{Rating: 3, CheckIn: "2024-01-10", GuestsMax: 2}))
}

func TestDetailsForPlainError(t *testing.T) {
	assert.Equal(t, map[string]string{"body": "EOF"}, Details(errors.New("EOF")))
}
