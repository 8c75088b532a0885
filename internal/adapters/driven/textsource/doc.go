// Package textsource provides implementations of the TextSource
// interface for the corpus file formats, plus the resolver that routes
// a file to its source by extension.
//
// Extraction is best effort across the package: a file whose format is
// recognised but whose text layer is empty (a scanned PDF, a legacy
// .doc) yields an empty RawDocument rather than an error, and the
// classifier falls back to the filename.
package textsource
