package detect

// ConfigParser is the capability every config parser exposes: the globs it
// wants to see and a parse function turning matched file content into raw
// deployment candidates.
//
// Parse must never abort a scan: an error (or panic, which the scanner
// contains) causes the file to be skipped for that parser only.
type ConfigParser interface {
	// Name identifies the parser in logs.
	Name() string

	// Patterns returns the file globs this parser wants, in CompileGlob
	// syntax.
	Patterns() []string

	// Parse extracts deployment candidates from one matched file. The path
	// is slash-separated and relative to the scan root. Returning an empty
	// slice is the normal outcome for files that match a glob but carry no
	// deployment signal.
	Parse(path string, content []byte) ([]DeploymentCandidate, error)
}

// BuiltinParsers returns the closed set of config parsers, composed
// explicitly rather than through dynamic registration.
func BuiltinParsers() []ConfigParser {
	return []ConfigParser{
		NewAWSParser(),
		NewGCPParser(),
		NewAzureParser(),
		NewCIPipelineParser(),
		NewVercelParser(),
		NewHerokuParser(),
		NewCloudflareParser(),
	}
}
