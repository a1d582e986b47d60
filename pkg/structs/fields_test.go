package structs_test

import (
	"testing"

	"github.com/mdouchement/cmsadmin/pkg/structs"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Title string
	Count int
}

func TestGetField(t *testing.T) {
	s := sample{Title: "Hello", Count: 3}

	assert.Equal(t, "Hello", structs.GetField(s, "Title"))
	assert.Equal(t, 3, structs.GetField(&s, "Count"))
	assert.Panics(t, func() { structs.GetField(s, "Unknown") })
}

func TestText(t *testing.T) {
	s := sample{Title: "Hello", Count: 3}

	assert.Equal(t, []string{"Hello", "3"}, structs.Text(s, "Title", "Count"))
	assert.Empty(t, structs.Text(s))
}
