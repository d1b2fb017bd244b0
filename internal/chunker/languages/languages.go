// Package languages registers the recognized programming languages and their
// tree-sitter grammars. Languages without a grammar binding are registered
// extension-only: their files still route to the code collection but are
// split by the generic splitter.
package languages

import "github.com/aditya22034/CodeWhisper/internal/chunker"

// RegisterAll populates the registry with every recognized language.
func RegisterAll(r *chunker.Registry) {
	RegisterGo(r)
	RegisterPython(r)
	RegisterJavaScript(r)
	RegisterTypeScript(r)
	RegisterJava(r)
	RegisterRust(r)
	RegisterRuby(r)
	RegisterC(r)
	RegisterCPP(r)
	registerExtensionOnly(r)
}

// registerExtensionOnly covers languages recognized for routing purposes
// only. Adding a grammar and query later upgrades them to AST chunking.
func registerExtensionOnly(r *chunker.Registry) {
	r.Register("php", &chunker.LanguageSpec{Extensions: []string{".php"}})
	r.Register("csharp", &chunker.LanguageSpec{Extensions: []string{".cs"}})
	r.Register("swift", &chunker.LanguageSpec{Extensions: []string{".swift"}})
	r.Register("kotlin", &chunker.LanguageSpec{Extensions: []string{".kt"}})
	r.Register("scala", &chunker.LanguageSpec{Extensions: []string{".scala"}})
	r.Register("html", &chunker.LanguageSpec{Extensions: []string{".html", ".htm"}})
}
