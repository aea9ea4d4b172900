package config

// DefaultTemplate is the commented starter configuration written by
// "rstexpand init".
const DefaultTemplate = `# rstexpand configuration
# See https://github.com/yaklabco/rstexpand for documentation.

# Failure policy: "lenient" leaves unresolvable directives in place with a
# warning; "strict" aborts on the first failure.
policy: lenient

# How many recursion levels beyond the initial directive are expanded.
# 0 uses the built-in default (1).
max_depth: 0

# One-line summary truncation: "nearest", "blank-line", or "newline".
truncation: nearest

# Object resolver: "auto" (doc index first, then Go packages),
# "index", or "go".
resolver: auto

# Path to a precomputed documentation index (YAML). Optional.
# doc_index: docs/index.yml

# File extensions treated as reStructuredText during discovery.
extensions:
  - .rst
  - .rest
  - .txt

# Glob patterns to skip.
ignore:
  - "_build/**"
`
