// Package naming generates the salted base names that annotation/image pairs
// are renamed to, tracks names claimed within a run, and builds the paths
// of renamed files.
//
// A generated name has the form <prefix>_<n>_<symbols>, where n is drawn
// from [0, 1000) and symbols is four distinct entries of a fixed
// eight-symbol alphabet, concatenated in draw order. Names are not
// guaranteed unique; see [ClaimSet] for the opt-in in-run check.
package naming
