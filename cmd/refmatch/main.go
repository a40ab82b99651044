// Refmatch inspects the selection criteria of hierarchical rule
// mappings: which match rules select a given reference file, and from
// which observation timestamp those rules apply.
//
// Usage:
//
//	# Show the match paths selecting a reference under a context
//	refmatch matches --contexts hst.pmap --files q9e1206kj_bia.fits
//
//	# Minimum effective timestamp across a set of new references
//	refmatch exptime --contexts hst.pmap --files q9e1206kj_bia.fits
//
//	# Which mappings depend on a file
//	refmatch uses --files q9e1206kj_bia.fits
//
//	# Validate mapping files
//	refmatch lint --dir ./mappings
//
//	# Fetch the published mapping set
//	refmatch sync --repo https://example.org/mappings.git
//
//	# Long-running mode with cache watching and metrics
//	refmatch serve
package main

func main() {
	Execute()
}
