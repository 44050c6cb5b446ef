// Package parser reads .orm schema declaration files using Participle and
// turns them into a schema registry.
//
// A declaration file looks like:
//
//	// users of the system
//	model User @table("users") {
//	  id      int       @id
//	  name    string
//	  age     int?      @default(0)
//	  created datetime  @default(now())
//	  updated datetime? @onUpdate(now())
//	}
//
//	model Post {
//	  title  string
//	  author User     @column("author_id")
//	}
//
// A field whose type is not a builtin type is a relation to the model of
// that name.
package parser

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// SchemaLexer tokenizes .orm files.
var SchemaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[@{}(),?]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// File is the parse tree of one declaration file.
type File struct {
	Pos    lexer.Position
	Models []*ModelDecl `@@*`
}

// ModelDecl is a `model Name @attr... { fields }` block.
type ModelDecl struct {
	Pos        lexer.Position
	Name       string       `"model" @Ident`
	Attributes []*Attribute `@@*`
	Fields     []*FieldDecl `"{" @@* "}"`
}

// FieldDecl is one `name type[?] @attr...` line.
type FieldDecl struct {
	Pos        lexer.Position
	Name       string       `@Ident`
	Type       string       `@Ident`
	Optional   bool         `@"?"?`
	Attributes []*Attribute `@@*`
}

// Attribute is `@name` or `@name(arg, ...)`.
type Attribute struct {
	Pos  lexer.Position
	Name string   `"@" @Ident`
	Args []*Value `( "(" ( @@ ( "," @@ )* )? ")" )?`
}

// Value is an attribute argument.
type Value struct {
	Pos    lexer.Position
	String *string `  @String`
	Number *string `| @Number`
	Call   *string `| @Ident "(" ")"`
	Ident  *string `| @Ident`
}

var schemaParser = participle.MustBuild[File](
	participle.Lexer(SchemaLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Parse parses a declaration file from r.
func Parse(filename string, r io.Reader) (*File, error) {
	return schemaParser.Parse(filename, r)
}

// ParseString parses a declaration file held in a string.
func ParseString(filename, input string) (*File, error) {
	return Parse(filename, strings.NewReader(input))
}
