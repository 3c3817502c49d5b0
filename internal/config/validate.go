package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/render"
	"github.com/matzehuels/wsgraph/pkg/render/nodelink"
)

// ValidationError is a config file syntax error with position.
type ValidationError struct {
	FilePath string
	Line     int
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// ValidateYAMLSyntax checks that the file at path is well-formed YAML.
// A missing or empty file is valid.
func ValidateYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		ve := &ValidationError{FilePath: path, Message: strings.TrimPrefix(err.Error(), "yaml: ")}
		if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
			ve.Line, _ = strconv.Atoi(m[1])
		}
		return ve
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Depth < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "depth must not be negative, got %d", c.Depth)
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}
	if err := nodelink.ValidateRankDir(c.RankDir); err != nil {
		return err
	}
	if !c.UseCommand() {
		if err := render.ValidateEngine(c.Graphviz.Engine); err != nil {
			return err
		}
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.RootPackage != "" {
		if err := errs.ValidatePackageName(c.RootPackage); err != nil {
			return err
		}
	}
	return nil
}
