// Package content loads the authored game data: event identities, the item
// catalog, named action sequences and level definitions. Content is
// read-only at runtime; references between files are validated at load time
// because a dangling reference is an authoring bug, not a play condition.
package content

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avecilla-games/memoria/pkg/action"
	"github.com/avecilla-games/memoria/pkg/item"
	"github.com/avecilla-games/memoria/pkg/level"
)

// Catalog is the loaded, validated content set.
type Catalog struct {
	StartLevel string
	Events     []string
	Items      []item.Item
	Sequences  map[string]*action.Sequence
	levels     map[string]*level.Level
}

// Level looks up a level definition by name.
func (c *Catalog) Level(name string) (*level.Level, bool) {
	lvl, ok := c.levels[name]
	return lvl, ok
}

// Levels returns the names of all defined levels.
func (c *Catalog) Levels() []string {
	names := make([]string, 0, len(c.levels))
	for name := range c.levels {
		names = append(names, name)
	}
	return names
}

// HasEvent reports whether an event identity is declared.
func (c *Catalog) HasEvent(name string) bool {
	for _, e := range c.Events {
		if e == name {
			return true
		}
	}
	return false
}

type manifestFile struct {
	StartLevel string `json:"start_level" yaml:"start_level"`
}

type eventsFile struct {
	Events []string `json:"events" yaml:"events"`
}

type itemsFile struct {
	Items []item.Item `json:"items" yaml:"items"`
}

type sequenceRef struct {
	TriggerEvent    string `json:"trigger_event,omitempty" yaml:"trigger_event,omitempty"`
	CompletionEvent string `json:"completion_event,omitempty" yaml:"completion_event,omitempty"`
	Sequence        string `json:"sequence" yaml:"sequence"`
}

type levelFile struct {
	Name            string           `json:"name" yaml:"name"`
	Scene           string           `json:"scene,omitempty" yaml:"scene,omitempty"`
	InitialAgeGroup level.AgeGroup   `json:"initial_age_group" yaml:"initial_age_group"`
	PauseAllowed    bool             `json:"pause_allowed,omitempty" yaml:"pause_allowed,omitempty"`
	Sequences       []sequenceRef    `json:"sequences,omitempty" yaml:"sequences,omitempty"`
	Showables       []level.Showable `json:"showables,omitempty" yaml:"showables,omitempty"`
}

// Load reads and validates the content catalog under dataDir.
func Load(dataDir string) (*Catalog, error) {
	c := &Catalog{
		Sequences: make(map[string]*action.Sequence),
		levels:    make(map[string]*level.Level),
	}

	var manifest manifestFile
	if err := decodeFirst(dataDir, "manifest", &manifest); err != nil {
		return nil, err
	}
	c.StartLevel = manifest.StartLevel

	var events eventsFile
	if err := decodeFirst(dataDir, "events", &events); err != nil {
		return nil, err
	}
	c.Events = events.Events

	var items itemsFile
	if err := decodeFirst(dataDir, "items", &items); err != nil {
		return nil, err
	}
	c.Items = items.Items

	if err := loadDir(filepath.Join(dataDir, "sequences"), func(path string) error {
		var seq action.Sequence
		if err := decodeFile(path, &seq); err != nil {
			return err
		}
		if seq.Name == "" {
			seq.Name = baseName(path)
		}
		if _, dup := c.Sequences[seq.Name]; dup {
			return fmt.Errorf("duplicate sequence name %q", seq.Name)
		}
		c.Sequences[seq.Name] = &seq
		return nil
	}); err != nil {
		return nil, err
	}

	var levelFiles []levelFile
	if err := loadDir(filepath.Join(dataDir, "levels"), func(path string) error {
		var lf levelFile
		if err := decodeFile(path, &lf); err != nil {
			return err
		}
		if lf.Name == "" {
			lf.Name = baseName(path)
		}
		levelFiles = append(levelFiles, lf)
		return nil
	}); err != nil {
		return nil, err
	}

	var problems []string
	for _, lf := range levelFiles {
		lvl, errs := c.buildLevel(lf)
		problems = append(problems, errs...)
		if _, dup := c.levels[lvl.Name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate level name %q", lvl.Name))
			continue
		}
		c.levels[lvl.Name] = lvl
	}

	problems = append(problems, c.validate()...)
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid content:\n  - %s", strings.Join(problems, "\n  - "))
	}

	return c, nil
}

func (c *Catalog) buildLevel(lf levelFile) (*level.Level, []string) {
	var problems []string

	lvl := &level.Level{
		Name:            lf.Name,
		Scene:           lf.Scene,
		InitialAgeGroup: lf.InitialAgeGroup,
		PauseAllowed:    lf.PauseAllowed,
		Showables:       lf.Showables,
	}
	if !lf.InitialAgeGroup.Valid() {
		problems = append(problems, fmt.Sprintf("level %q: invalid initial age group %q", lf.Name, lf.InitialAgeGroup))
	}

	for i, ref := range lf.Sequences {
		if ref.TriggerEvent != "" && !c.HasEvent(ref.TriggerEvent) {
			problems = append(problems, fmt.Sprintf("level %q: sequence %d references unknown trigger event %q", lf.Name, i, ref.TriggerEvent))
		}
		if ref.CompletionEvent != "" && !c.HasEvent(ref.CompletionEvent) {
			problems = append(problems, fmt.Sprintf("level %q: sequence %d references unknown completion event %q", lf.Name, i, ref.CompletionEvent))
		}
		seq, ok := c.Sequences[ref.Sequence]
		if !ok {
			problems = append(problems, fmt.Sprintf("level %q: sequence %d references unknown sequence %q", lf.Name, i, ref.Sequence))
			continue
		}
		lvl.Sequences = append(lvl.Sequences, level.TriggeredSequence{
			TriggerEvent:    ref.TriggerEvent,
			CompletionEvent: ref.CompletionEvent,
			Sequence:        seq,
		})
	}

	seenIDs := make(map[int]bool)
	for _, s := range lf.Showables {
		if seenIDs[s.ID] {
			problems = append(problems, fmt.Sprintf("level %q: duplicate showable id %d", lf.Name, s.ID))
		}
		seenIDs[s.ID] = true
		for _, e := range append(append([]string{}, s.ShowEvents...), s.HideEvents...) {
			if !c.HasEvent(e) {
				problems = append(problems, fmt.Sprintf("level %q: showable %d references unknown event %q", lf.Name, s.ID, e))
			}
		}
		for _, g := range s.AgeGroups {
			if !g.Valid() {
				problems = append(problems, fmt.Sprintf("level %q: showable %d has invalid age group %q", lf.Name, s.ID, g))
			}
		}
	}

	return lvl, problems
}

// validate checks cross-file references once everything is loaded.
func (c *Catalog) validate() []string {
	var problems []string

	if c.StartLevel == "" {
		problems = append(problems, "manifest: start_level is required")
	} else if _, ok := c.levels[c.StartLevel]; !ok {
		problems = append(problems, fmt.Sprintf("manifest: start_level %q is not a defined level", c.StartLevel))
	}

	itemTitles := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		if itemTitles[it.Title] {
			problems = append(problems, fmt.Sprintf("duplicate item title %q", it.Title))
		}
		itemTitles[it.Title] = true
		if !it.Category.Valid() {
			problems = append(problems, fmt.Sprintf("item %q: invalid category %q", it.Title, it.Category))
		}
	}

	for name, seq := range c.Sequences {
		for i, a := range seq.Actions {
			problems = append(problems, c.validateAction(name, i, a, itemTitles)...)
		}
	}

	return problems
}

func (c *Catalog) validateAction(seqName string, idx int, a action.Action, itemTitles map[string]bool) []string {
	var problems []string
	at := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf("sequence %q action %d: ", seqName, idx)+fmt.Sprintf(format, args...))
	}

	known := false
	for _, k := range action.Kinds {
		if a.Kind == k {
			known = true
			break
		}
	}
	if !known {
		at("unknown kind %q", a.Kind)
		return problems
	}

	switch a.Kind {
	case action.KindTriggerEvent:
		if !c.HasEvent(a.Event) {
			at("unknown event %q", a.Event)
		}
	case action.KindPickItem, action.KindDiscardItem:
		if !itemTitles[a.Item] {
			at("unknown item %q", a.Item)
		}
	case action.KindChangeAgeGroup:
		if !level.AgeGroup(a.AgeGroup).Valid() {
			at("invalid age group %q", a.AgeGroup)
		}
	case action.KindLoadLevel:
		if _, ok := c.levels[a.Level]; !ok {
			at("unknown level %q", a.Level)
		}
	}
	return problems
}

// decodeFirst reads <dir>/<name>.{json,yaml,yml}, whichever exists.
func decodeFirst(dir, name string, v interface{}) error {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return decodeFile(path, v)
	}
	return fmt.Errorf("missing content file %s.{json,yaml} in %s", name, dir)
}

func decodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return nil
}

func loadDir(dir string, fn func(path string) error) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		switch filepath.Ext(path) {
		case ".json", ".yaml", ".yml":
			return fn(path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
