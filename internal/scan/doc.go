// Package scan walks a dataset directory and hands every regular file to an
// ordered list of handlers.
//
// Quarantine directories (see [Quarantines]) are never entered, so files
// already relocated there are not reconsidered on later passes or runs.
package scan
