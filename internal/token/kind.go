package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// RealLit represents a real literal.
	RealLit
	// StringLit represents a 'quoted' string literal.
	StringLit

	// KwSchema represents the SCHEMA keyword.
	KwSchema
	// KwEndSchema represents the END_SCHEMA keyword.
	KwEndSchema
	// KwEntity represents the ENTITY keyword.
	KwEntity
	// KwEndEntity represents the END_ENTITY keyword.
	KwEndEntity
	// KwType represents the TYPE keyword.
	KwType
	// KwEndType represents the END_TYPE keyword.
	KwEndType
	// KwEnumeration represents the ENUMERATION keyword.
	KwEnumeration
	// KwSelect represents the SELECT keyword.
	KwSelect
	// KwOf represents the OF keyword.
	KwOf
	// KwSet represents the SET keyword.
	KwSet
	// KwList represents the LIST keyword.
	KwList
	// KwBag represents the BAG keyword.
	KwBag
	// KwArray represents the ARRAY keyword.
	KwArray
	// KwSubtype represents the SUBTYPE keyword.
	KwSubtype
	// KwSupertype represents the SUPERTYPE keyword.
	KwSupertype
	// KwAbstract represents the ABSTRACT keyword.
	KwAbstract
	// KwOptional represents the OPTIONAL keyword.
	KwOptional
	// KwUnique represents the UNIQUE keyword.
	KwUnique
	// KwUse represents the USE keyword.
	KwUse
	// KwReference represents the REFERENCE keyword.
	KwReference
	// KwFrom represents the FROM keyword.
	KwFrom
	// KwAs represents the AS keyword.
	KwAs
	// KwFunction represents the FUNCTION keyword.
	KwFunction
	// KwEndFunction represents the END_FUNCTION keyword.
	KwEndFunction
	// KwProcedure represents the PROCEDURE keyword.
	KwProcedure
	// KwEndProcedure represents the END_PROCEDURE keyword.
	KwEndProcedure
	// KwRule represents the RULE keyword.
	KwRule
	// KwEndRule represents the END_RULE keyword.
	KwEndRule
	// KwConstant represents the CONSTANT keyword.
	KwConstant
	// KwEndConstant represents the END_CONSTANT keyword.
	KwEndConstant
	// KwWhere represents the WHERE keyword.
	KwWhere
	// KwDerive represents the DERIVE keyword.
	KwDerive
	// KwInverse represents the INVERSE keyword.
	KwInverse

	// KwNumber represents the NUMBER simple type keyword.
	KwNumber
	// KwReal represents the REAL simple type keyword.
	KwReal
	// KwInteger represents the INTEGER simple type keyword.
	KwInteger
	// KwString represents the STRING simple type keyword.
	KwString
	// KwBoolean represents the BOOLEAN simple type keyword.
	KwBoolean
	// KwLogical represents the LOGICAL simple type keyword.
	KwLogical
	// KwBinary represents the BINARY simple type keyword.
	KwBinary

	// Semicolon represents ';'.
	Semicolon
	// Colon represents ':'.
	Colon
	// Comma represents ','.
	Comma
	// Assign represents ':='. Unused by the declaration subset but lexed.
	Assign
	// Equals represents '='.
	Equals
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// Question represents '?' (the indeterminate bound).
	Question
	// Dot represents '.'.
	Dot
	// Backslash represents '\' (the select group qualifier).
	Backslash
	// Operator represents an expression operator ('+', '*', '<=', '<>',
	// '||', interval braces). These appear only inside WHERE, DERIVE,
	// INVERSE and UNIQUE tails; Text keeps the exact spelling.
	Operator
)

var kindNames = map[Kind]string{
	Invalid:        "invalid",
	EOF:            "eof",
	Ident:          "ident",
	IntLit:         "int",
	RealLit:        "real",
	StringLit:      "string",
	KwSchema:       "SCHEMA",
	KwEndSchema:    "END_SCHEMA",
	KwEntity:       "ENTITY",
	KwEndEntity:    "END_ENTITY",
	KwType:         "TYPE",
	KwEndType:      "END_TYPE",
	KwEnumeration:  "ENUMERATION",
	KwSelect:       "SELECT",
	KwOf:           "OF",
	KwSet:          "SET",
	KwList:         "LIST",
	KwBag:          "BAG",
	KwArray:        "ARRAY",
	KwSubtype:      "SUBTYPE",
	KwSupertype:    "SUPERTYPE",
	KwAbstract:     "ABSTRACT",
	KwOptional:     "OPTIONAL",
	KwUnique:       "UNIQUE",
	KwUse:          "USE",
	KwReference:    "REFERENCE",
	KwFrom:         "FROM",
	KwAs:           "AS",
	KwFunction:     "FUNCTION",
	KwEndFunction:  "END_FUNCTION",
	KwProcedure:    "PROCEDURE",
	KwEndProcedure: "END_PROCEDURE",
	KwRule:         "RULE",
	KwEndRule:      "END_RULE",
	KwConstant:     "CONSTANT",
	KwEndConstant:  "END_CONSTANT",
	KwWhere:        "WHERE",
	KwDerive:       "DERIVE",
	KwInverse:      "INVERSE",
	KwNumber:       "NUMBER",
	KwReal:         "REAL",
	KwInteger:      "INTEGER",
	KwString:       "STRING",
	KwBoolean:      "BOOLEAN",
	KwLogical:      "LOGICAL",
	KwBinary:       "BINARY",
	Semicolon:      ";",
	Colon:          ":",
	Comma:          ",",
	Assign:         ":=",
	Equals:         "=",
	LParen:         "(",
	RParen:         ")",
	LBracket:       "[",
	RBracket:       "]",
	Question:       "?",
	Dot:            ".",
	Backslash:      "\\",
	Operator:       "op",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
