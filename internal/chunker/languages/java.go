package languages

import (
	"github.com/smacker/go-tree-sitter/java"

	"github.com/aditya22034/CodeWhisper/internal/chunker"
)

func RegisterJava(r *chunker.Registry) {
	r.Register("java", &chunker.LanguageSpec{
		Language: java.GetLanguage(),
		Query: `
			(method_declaration name: (identifier) @name) @chunk
			(constructor_declaration name: (identifier) @name) @chunk
			(class_declaration name: (identifier) @name) @chunk
			(interface_declaration name: (identifier) @name) @chunk
			(enum_declaration name: (identifier) @name) @chunk
		`,
		Extensions: []string{".java"},
	})
}
