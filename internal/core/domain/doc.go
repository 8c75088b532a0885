// Package domain defines the core business entities for Taxa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Text-layer extraction of one corpus file
//   - Classification: The (domain_cn, domain_en) label pair
//   - Record: A persisted (document, domain) association
//   - AppSettings: Application configuration with defaults
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
