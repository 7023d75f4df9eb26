package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilupskalvis/cmr/internal/models"
)

func region(ours, theirs []string) *models.ConflictRegion {
	return &models.ConflictRegion{OursLines: ours, TheirsLines: theirs}
}

func TestClassify_Import(t *testing.T) {
	tests := []struct {
		name   string
		ours   []string
		theirs []string
	}{
		{"es module", []string{"import {a} from 'm';"}, []string{"import {b} from 'm';"}},
		{"require", []string{"const fs = require('fs');"}, []string{"x = 1"}},
		{"python", []string{"x = 1"}, []string{"from os import path"}},
		{"go style", []string{`import "fmt"`}, []string{`import "os"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, models.CategoryImport, Classify(region(tt.ours, tt.theirs)))
		})
	}
}

func TestClassify_Formatting(t *testing.T) {
	// Identical content wins over the structural keyword check
	r := region([]string{"var x = 1;"}, []string{"var x = 1;"})
	assert.Equal(t, models.CategoryFormatting, Classify(r))

	r = region([]string{"  if (a)   { b(); }"}, []string{"\tif (a) { b(); }"})
	assert.Equal(t, models.CategoryFormatting, Classify(r))
}

func TestClassify_Structural(t *testing.T) {
	r := region([]string{"function handle(a) {"}, []string{"function handle(a, b) {"})
	assert.Equal(t, models.CategoryStructural, Classify(r))

	r = region([]string{"class Widget {"}, []string{"class Gadget {"})
	assert.Equal(t, models.CategoryStructural, Classify(r))

	r = region([]string{"const limit = 5;"}, []string{"const limit = 10;"})
	assert.Equal(t, models.CategoryStructural, Classify(r))
}

func TestClassify_ContentDefault(t *testing.T) {
	r := region([]string{"total += amount;"}, []string{"total += amount * 2;"})
	assert.Equal(t, models.CategoryContent, Classify(r))
}

func TestClassify_Deterministic(t *testing.T) {
	r := region([]string{"function f() {"}, []string{"total += 1;"})
	first := Classify(r)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(r))
	}
}

func TestClassify_ImportPrecedesStructural(t *testing.T) {
	// const + require on one side: import wins by precedence
	r := region([]string{"const db = require('db');"}, []string{"const db = require('database');"})
	assert.Equal(t, models.CategoryImport, Classify(r))
}
