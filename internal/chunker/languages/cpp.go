package languages

import (
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/aditya22034/CodeWhisper/internal/chunker"
)

func RegisterCPP(r *chunker.Registry) {
	r.Register("cpp", &chunker.LanguageSpec{
		Language: cpp.GetLanguage(),
		Query: `
			(function_definition) @chunk
			(class_specifier name: (type_identifier) @name body: (field_declaration_list)) @chunk
			(struct_specifier name: (type_identifier) @name body: (field_declaration_list)) @chunk
		`,
		Extensions: []string{".cpp"},
	})
}
