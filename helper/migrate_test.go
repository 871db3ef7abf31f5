package helper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel/config"
	"hotel/helper"
)

func TestRunner_UnknownAction(t *testing.T) {
	err := helper.Runner(&config.Config{}, "sideways")

	assert.EqualError(t, err, `unknown migration action "sideways"`)
}
