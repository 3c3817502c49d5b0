package config

import (
	"github.com/matzehuels/wsgraph/pkg/cache"
	"github.com/matzehuels/wsgraph/pkg/depgraph"
	"github.com/matzehuels/wsgraph/pkg/render"
)

// Defaults returns the default value of every key.
func Defaults() map[string]any {
	return map[string]any{
		"root_package":       "",
		"depth":              depgraph.DefaultMaxDepth,
		"include_dev":        false,
		"include_peer":       false,
		"format":             string(render.FormatDOT),
		"output":             "",
		"detailed":           false,
		"rankdir":            "TB",
		"graphviz.engine":    render.DefaultEngine,
		"graphviz.command":   "",
		"graphviz.directory": "",
		"cache.enabled":      true,
		"cache.dir":          "",
		"cache.ttl":          cache.DefaultTTL,
		"cache.redis_url":    "",
		"serve.addr":         ":8080",
	}
}

// Template is a commented config file with every key at its default.
const Template = `# wsgraph configuration

root_package: ""      # Package to start from; empty graphs every package
depth: 3              # Dependency levels below each root
include_dev: false    # Follow devDependencies / dev-dependencies
include_peer: false   # Follow peerDependencies
format: dot           # dot | json | svg | png | jpg | pdf
output: ""            # File to write; empty writes to stdout
detailed: false       # Show versions in node labels
rankdir: TB           # TB | LR | BT | RL

graphviz:
  engine: dot         # dot | neato | fdp | sfdp | circo | twopi | osage | patchwork
  command: ""         # Installed Graphviz program; empty renders in-process
  directory: ""       # Directory holding command, if not in PATH

cache:
  enabled: true
  dir: ""             # Empty uses the user cache directory
  ttl: 24h
  redis_url: ""       # redis://host:6379/0 shares the cache between servers

serve:
  addr: ":8080"
`
