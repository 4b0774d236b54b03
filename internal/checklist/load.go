package checklist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// #region errors

// ValidationError reports every problem in a module file at once. Loading a
// module is the engine's one hard-failure path: scoring integrity depends on
// a valid definition, so callers must treat this as fatal for the session.
type ValidationError struct {
	ModuleID string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid module %q: %v", e.ModuleID, e.Problems)
}

// NotFoundError reports an unknown module id.
type NotFoundError struct {
	ModuleID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module %q not found", e.ModuleID)
}

// #endregion errors

// #region parse

// Parse decodes a module definition from YAML (which also accepts JSON),
// validates it, and compiles its detection patterns.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse module definition: %w", err)
	}
	if err := finalize(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// finalize validates required sections and compiles patterns in place.
func finalize(def *Definition) error {
	var problems []string

	if def.ID == "" {
		problems = append(problems, "id is required")
	}
	if def.Name == "" {
		problems = append(problems, "name is required")
	}
	if len(def.Checklist) == 0 {
		problems = append(problems, "checklist is required")
	}
	if def.Evaluation.MasteryThreshold <= 0 {
		problems = append(problems, "evaluation.mastery_threshold is required")
	}

	seen := map[string]bool{}
	for i := range def.Checklist {
		it := &def.Checklist[i]
		if it.ID == "" {
			problems = append(problems, fmt.Sprintf("checklist[%d]: id is required", i))
			continue
		}
		if seen[it.ID] {
			problems = append(problems, fmt.Sprintf("checklist[%d]: duplicate id %q", i, it.ID))
		}
		seen[it.ID] = true
		if len(it.Patterns) == 0 {
			problems = append(problems, fmt.Sprintf("checklist[%d] %s: at least one pattern is required", i, it.ID))
		}
		if it.Weight < 0 {
			problems = append(problems, fmt.Sprintf("checklist[%d] %s: weight must not be negative", i, it.ID))
		}
		it.compiled = it.compiled[:0]
		for _, p := range it.Patterns {
			re, err := regexp.Compile(Normalize(p))
			if err != nil {
				problems = append(problems, fmt.Sprintf("checklist[%d] %s: bad pattern %q: %v", i, it.ID, p, err))
				continue
			}
			it.compiled = append(it.compiled, re)
		}
	}
	for id := range def.RisksIfMissing {
		if !seen[id] {
			problems = append(problems, fmt.Sprintf("risks_if_missing: unknown item %q", id))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{ModuleID: def.ID, Problems: problems}
	}
	return nil
}

// #endregion parse

// #region repository

// Repository resolves module definitions by id and memoizes them. Concurrent
// loaders of the same id collapse into one read; a failed load caches
// nothing, so a fixed file can be retried. Built-in modules answer when no
// file overrides them.
type Repository struct {
	dir   string
	cache sync.Map // id → *Definition
	group singleflight.Group
}

// NewRepository creates a repository over a module directory. dir may be
// empty to serve built-in modules only.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Load returns the definition for id, reading and validating it on first use.
func (r *Repository) Load(id string) (*Definition, error) {
	if v, ok := r.cache.Load(id); ok {
		return v.(*Definition), nil
	}

	v, err, _ := r.group.Do(id, func() (interface{}, error) {
		if v, ok := r.cache.Load(id); ok {
			return v, nil
		}
		def, err := r.read(id)
		if err != nil {
			return nil, err
		}
		r.cache.Store(id, def)
		return def, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Definition), nil
}

func (r *Repository) read(id string) (*Definition, error) {
	if r.dir != "" {
		for _, name := range []string{id + ".yaml", id + ".yml", id + ".json"} {
			path := filepath.Join(r.dir, name)
			data, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("read module file %s: %w", path, err)
			}
			if strings.HasSuffix(name, ".json") {
				return parseJSON(id, data)
			}
			return Parse(data)
		}
	}
	if def, ok := builtinModules[id]; ok {
		// Finalize a private copy so the shared builtin table stays pristine.
		cp := def
		cp.Checklist = append([]Item(nil), def.Checklist...)
		if err := finalize(&cp); err != nil {
			return nil, err
		}
		return &cp, nil
	}
	return nil, &NotFoundError{ModuleID: id}
}

func parseJSON(id string, data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse module %s: %w", id, err)
	}
	if err := finalize(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// #endregion repository
