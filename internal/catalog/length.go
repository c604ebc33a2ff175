package catalog

import (
	"fmt"

	"github.com/bookwright/bookwright/internal/api"
)

type lengthInfo struct {
	id        string
	words     string
	viability string
}

// Commercial length bands with their typical word ranges and how readily a
// debut at that length sells to publishers.
var lengths = []lengthInfo{
	{"short_novel", "40,000-60,000", "high"},
	{"standard_novel", "60,000-90,000", "high"},
	{"long_novel", "90,000-120,000", "moderate"},
	{"novella", "17,500-40,000", "moderate"},
	{"epic_novel", "120,000-200,000", "low"},
}

// Lengths returns the book length options.
func Lengths() []api.Option {
	opts := make([]api.Option, 0, len(lengths))
	for _, l := range lengths {
		opts = append(opts, api.Option{
			ID:          l.id,
			Name:        DisplayName(l.id),
			Description: fmt.Sprintf("%s words - %s publishing viability", l.words, l.viability),
		})
	}
	return opts
}
