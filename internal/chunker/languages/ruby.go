package languages

import (
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/aditya22034/CodeWhisper/internal/chunker"
)

func RegisterRuby(r *chunker.Registry) {
	r.Register("ruby", &chunker.LanguageSpec{
		Language: ruby.GetLanguage(),
		Query: `
			(method name: (identifier) @name) @chunk
			(class name: (constant) @name) @chunk
			(module name: (constant) @name) @chunk
		`,
		Extensions: []string{".rb"},
	})
}
