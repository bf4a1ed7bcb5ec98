package token

import "strings"

// EXPRESS keywords are case-insensitive (ISO 10303-11 §7.2); the table is
// keyed by the uppercase spelling and LookupKeyword folds its argument.
var keywords = map[string]Kind{
	"SCHEMA":        KwSchema,
	"END_SCHEMA":    KwEndSchema,
	"ENTITY":        KwEntity,
	"END_ENTITY":    KwEndEntity,
	"TYPE":          KwType,
	"END_TYPE":      KwEndType,
	"ENUMERATION":   KwEnumeration,
	"SELECT":        KwSelect,
	"OF":            KwOf,
	"SET":           KwSet,
	"LIST":          KwList,
	"BAG":           KwBag,
	"ARRAY":         KwArray,
	"SUBTYPE":       KwSubtype,
	"SUPERTYPE":     KwSupertype,
	"ABSTRACT":      KwAbstract,
	"OPTIONAL":      KwOptional,
	"UNIQUE":        KwUnique,
	"USE":           KwUse,
	"REFERENCE":     KwReference,
	"FROM":          KwFrom,
	"AS":            KwAs,
	"FUNCTION":      KwFunction,
	"END_FUNCTION":  KwEndFunction,
	"PROCEDURE":     KwProcedure,
	"END_PROCEDURE": KwEndProcedure,
	"RULE":          KwRule,
	"END_RULE":      KwEndRule,
	"CONSTANT":      KwConstant,
	"END_CONSTANT":  KwEndConstant,
	"WHERE":         KwWhere,
	"DERIVE":        KwDerive,
	"INVERSE":       KwInverse,
	"NUMBER":        KwNumber,
	"REAL":          KwReal,
	"INTEGER":       KwInteger,
	"STRING":        KwString,
	"BOOLEAN":       KwBoolean,
	"LOGICAL":       KwLogical,
	"BINARY":        KwBinary,
}

// LookupKeyword maps a lexeme onto its keyword kind, folding case.
func LookupKeyword(lexeme string) (Kind, bool) {
	k, ok := keywords[strings.ToUpper(lexeme)]
	return k, ok
}
