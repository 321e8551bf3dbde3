// Package declcli provides a declarative layer for building command-line parsers. Commands and
// options are described as plain data, accumulated on an [App], and translated at call time into
// a tree of flag sets that parses an argument vector and dispatches to a single entry point.
//
// The package keeps the description of a command-line interface separate from the parsing
// machinery. Descriptors carry no behavior beyond ordered registration; [Build] turns them into a
// [Parser], and [Parser.Parse] returns a [Dispatch] naming the selected command chain and its
// option values. Help requests and parse failures are returned as [*Error] values so the caller
// decides whether to exit the process.
package declcli
