package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobIsEmpty(t *testing.T) {
	url := "x"

	cases := []struct {
		Name   string
		Given  *Job
		Expect bool
	}{
		{"Nil", nil, true},
		{"Blank", &Job{}, true},
		{"OnlyID", &Job{ID: "abc"}, true},
		{"Status", &Job{Status: PENDING}, false},
		{"Prompt", &Job{Prompt: "cat logo"}, false},
		{"ImageURL", &Job{ImageURL: &url}, false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, c.Given.IsEmpty())
		})
	}
}

func TestNewJobDone(t *testing.T) {
	u := NewJobDone("https://example.com/a.png")

	assert.Equal(t, DONE, u.Status)
	assert.Equal(t, "https://example.com/a.png", *u.ImageURL)
	assert.Nil(t, u.ErrorMessage)
}

func TestNewJobFailed(t *testing.T) {
	u := NewJobFailed()

	assert.Equal(t, FAILED, u.Status)
	assert.Nil(t, u.ImageURL)
	assert.Equal(t, "Generation failed. Please try again.", *u.ErrorMessage)
}

func TestToOp(t *testing.T) {
	cases := []struct {
		Given  string
		Expect Op
	}{
		{"insert", OpInsert},
		{"INSERT", OpInsert},
		{"update", OpUpdate},
		{"replace", OpUpdate},
		{"DELETE", OpDelete},
		{"drop", ""},
	}

	for _, c := range cases {
		t.Run(c.Given, func(t *testing.T) {
			assert.Equal(t, c.Expect, ToOp(c.Given))
		})
	}
}
