package detect

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/greenops/carbonscan/internal/gridzone"
)

// defaultSkipDirs are directory names never descended into: version-control
// metadata, dependency caches, and build output.
var defaultSkipDirs = []string{
	".git", ".hg", ".svn",
	"node_modules", "vendor", ".terraform", ".venv", "__pycache__",
	"dist", "build", "target", "out", ".next", ".nuxt", "coverage",
}

type compiledParser struct {
	parser   ConfigParser
	matchers []*regexp.Regexp
}

// Scanner walks a directory tree, matches files against the parser set's
// globs, and enriches every raw candidate before returning it. A Scanner is
// synchronous and single-use-safe: scans run sequentially in walk order and
// share only the read-only tables.
type Scanner struct {
	compiled []compiledParser
	enricher *Enricher
	skipDirs map[string]struct{}
	logger   zerolog.Logger
}

// Option configures a Scanner at construction.
type Option func(*scannerConfig)

type scannerConfig struct {
	parsers       []ConfigParser
	extraSkipDirs []string
}

// WithParsers replaces the built-in parser set, used by tests to isolate a
// single parser.
func WithParsers(parsers ...ConfigParser) Option {
	return func(cfg *scannerConfig) {
		cfg.parsers = parsers
	}
}

// WithSkipDirs adds directory names to the skip list.
func WithSkipDirs(names ...string) Option {
	return func(cfg *scannerConfig) {
		cfg.extraSkipDirs = append(cfg.extraSkipDirs, names...)
	}
}

// NewScanner builds a Scanner over the given grid tables. Glob patterns that
// fail to compile are logged and dropped rather than failing construction.
func NewScanner(table *gridzone.Table, logger zerolog.Logger, opts ...Option) *Scanner {
	cfg := scannerConfig{parsers: BuiltinParsers()}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Scanner{
		enricher: NewEnricher(table, logger),
		skipDirs: make(map[string]struct{}),
		logger:   logger,
	}
	for _, name := range defaultSkipDirs {
		s.skipDirs[name] = struct{}{}
	}
	for _, name := range cfg.extraSkipDirs {
		s.skipDirs[name] = struct{}{}
	}

	for _, p := range cfg.parsers {
		cp := compiledParser{parser: p}
		for _, pattern := range p.Patterns() {
			re, err := CompileGlob(pattern)
			if err != nil {
				logger.Error().
					Str("parser", p.Name()).
					Str("pattern", pattern).
					Err(err).
					Msg("invalid glob pattern, dropping")
				continue
			}
			cp.matchers = append(cp.matchers, re)
		}
		s.compiled = append(s.compiled, cp)
	}

	return s
}

// ScanDirectory walks rootPath and returns every enriched deployment found.
// The walk is an explicit stack, not call-stack recursion; unreadable files
// and directories are logged and skipped; result order follows the walk and
// is not guaranteed stable. An empty or inaccessible root yields an empty
// slice.
func (s *Scanner) ScanDirectory(rootPath string) []EnrichedDeployment {
	results := []EnrichedDeployment{}

	stack := []string{rootPath}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			s.logger.Warn().Str("dir", dir).Err(err).Msg("cannot read directory, skipping")
			continue
		}

		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if _, skip := s.skipDirs[entry.Name()]; skip {
					continue
				}
				stack = append(stack, full)
				continue
			}

			rel, err := filepath.Rel(rootPath, full)
			if err != nil {
				continue
			}
			results = append(results, s.scanFile(full, filepath.ToSlash(rel))...)
		}
	}

	return results
}

// scanFile runs every parser whose globs match the relative path. The file
// is read at most once; every raw candidate is enriched before return.
func (s *Scanner) scanFile(fullPath, relPath string) []EnrichedDeployment {
	var (
		content []byte
		loaded  bool
		found   []EnrichedDeployment
	)

	for _, cp := range s.compiled {
		if !matchesAny(cp.matchers, relPath) {
			continue
		}

		if !loaded {
			b, err := os.ReadFile(fullPath)
			if err != nil {
				s.logger.Warn().Str("path", fullPath).Err(err).Msg("cannot read file, skipping")
				return found
			}
			content = b
			loaded = true
		}

		for _, candidate := range s.safeParse(cp.parser, relPath, content) {
			found = append(found, s.enricher.Enrich(candidate))
		}
	}

	return found
}

func matchesAny(matchers []*regexp.Regexp, relPath string) bool {
	for _, re := range matchers {
		if re.MatchString(relPath) {
			return true
		}
	}
	return false
}

// safeParse isolates one parser's failure on one file: errors are logged and
// panics contained, so a bad file never aborts the enclosing scan.
func (s *Scanner) safeParse(p ConfigParser, relPath string, content []byte) (candidates []DeploymentCandidate) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("parser", p.Name()).
				Str("path", relPath).
				Interface("panic", r).
				Msg("parser panicked, skipping file")
			candidates = nil
		}
	}()

	candidates, err := p.Parse(relPath, content)
	if err != nil {
		s.logger.Warn().
			Str("parser", p.Name()).
			Str("path", relPath).
			Err(err).
			Msg("parse failed, skipping file")
		return nil
	}
	return candidates
}
