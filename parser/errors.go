// ==============================================================================================
// FILE: parser/errors.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Host-facing error codes for the parser. Internal fmt.Errorf calls throughout this
//          package stay as plain wrapped errors -- they are package-internal detail chained
//          with %w -- but everything that crosses into host code is stamped with an oops code
//          here, the same boundary-stamping pattern as holomush's internal/command/errors.go.
// ==============================================================================================

package parser

import "github.com/samber/oops"

// CodeParseError marks every error ParseString or Stream.Parse returns: an
// 'or' not directly after an 'if', an unknown next-tag, an unknown mutation
// operator or composite kind, a map literal where a value is expected, or a
// statement or header with the wrong number of tokens. Unbalanced quotes, brackets or
// braces and empty blocks are not reported: the lexer has no error path, and
// text after the last ';' is dropped without an error.
const CodeParseError = "PARSE_ERROR"

// CodeStreamIncomplete marks Stream.Sink called while a block fragment is
// still being buffered (its terminating ';' has not yet arrived).
const CodeStreamIncomplete = "STREAM_INCOMPLETE"

func wrapParseError(err error) error {
	if err == nil {
		return nil
	}
	return oops.Code(CodeParseError).Wrap(err)
}
