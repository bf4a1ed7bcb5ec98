package diag

import (
	"fmt"
)

// Code identifies a diagnostic category.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004

	// Syntactic
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynExpectIdentifier     Code = 2002
	SynExpectSemicolon      Code = 2003
	SynExpectType           Code = 2004
	SynExpectEquals         Code = 2005
	SynExpectParen          Code = 2006
	SynExpectBracket        Code = 2007
	SynExpectColon          Code = 2008
	SynExpectOf             Code = 2009
	SynExpectEndKeyword     Code = 2010
	SynEmptyEnumeration     Code = 2011
	SynEmptySelect          Code = 2012
	SynEmptySupertypeList   Code = 2013
	SynUnsupportedConstruct Code = 2014
	SynUnexpectedTopLevel   Code = 2015

	// Semantic (legalization errors surfaced as diagnostics by the driver)
	SemInfo          Code = 3000
	SemTypeNotFound  Code = 3001
	SemInvalidPath   Code = 3002
	SemDuplicateDecl Code = 3003

	// Driver
	IOLoadFileError Code = 4001
	ObsTimings      Code = 4002
)

func (c Code) String() string {
	return fmt.Sprintf("E%04d", uint16(c))
}
