package post

import (
	"reflect"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{"no tags", "just a plain update", nil},
		{"single tag", "shipping it #golang", []string{"golang"}},
		{"multiple tags", "#go and #postgres in #go projects", []string{"go", "postgres"}},
		{"case folded", "#GoLang #golang", []string{"golang"}},
		{"underscore and digits", "#go_1_2 rocks", []string{"go_1_2"}},
		{"bare hash ignored", "just a # symbol", nil},
		{"tag at end", "done #finally", []string{"finally"}},
		{"punctuation terminates", "#go, #sql.", []string{"go", "sql"}},
		{"adjacent hashes", "##double", []string{"double"}},
		{"order of first appearance", "#b #a #b", []string{"b", "a"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractHashtags(tc.content)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractHashtags(%q) = %v, want %v", tc.content, got, tc.want)
			}
		})
	}
}
