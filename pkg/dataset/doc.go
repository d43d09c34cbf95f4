// Package dataset loads the pre-computed tables behind each figure.
//
// A [Table] is an ordered set of named float64 columns read from a delimited
// text file. Rows carry no identity beyond their position; most figures use
// the position as an implicit time axis ([TimeAxis]).
//
// # Schemas
//
// The files come in two shapes, described by a [Schema]:
//
//   - [HeaderNamed]: the first line names the columns and the figure picks
//     the columns it needs by name. Extra columns are ignored.
//   - [HeaderReplaced]: the first line is a header whose text is ignored and
//     the columns are bound positionally to the schema's names. The field
//     count must match exactly.
//
// Some simulation dumps repeat their first row; [Schema.DropSentinel]
// discards the first data row after the header.
//
// # Errors
//
// Every failure is an input error from [github.com/eborriello/genfigs/pkg/errors]
// naming the file: FILE_NOT_FOUND when the file cannot be opened,
// INVALID_INPUT for empty files, wrong field counts, missing columns and
// cells that do not parse as floating point.
package dataset
