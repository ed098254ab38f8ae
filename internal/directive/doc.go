// Package directive reads `#! expect:` comments from BL sources and checks
// them against what the parser actually reports. Fixture files under
// testdata carry one or more such lines.
package directive
