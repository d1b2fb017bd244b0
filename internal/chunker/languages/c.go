package languages

import (
	"github.com/smacker/go-tree-sitter/c"

	"github.com/aditya22034/CodeWhisper/internal/chunker"
)

func RegisterC(r *chunker.Registry) {
	r.Register("c", &chunker.LanguageSpec{
		Language: c.GetLanguage(),
		Query: `
			(function_definition declarator: (function_declarator declarator: (identifier) @name)) @chunk
			(struct_specifier name: (type_identifier) @name body: (field_declaration_list)) @chunk
			(enum_specifier name: (type_identifier) @name body: (enumerator_list)) @chunk
		`,
		Extensions: []string{".c"},
	})
}
