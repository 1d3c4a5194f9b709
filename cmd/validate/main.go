package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/avecilla-games/memoria/internal/content"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <content-dir>\n", os.Args[0])
		os.Exit(1)
	}

	dir := os.Args[1]
	fmt.Printf("Validating %s...\n", dir)

	catalog, err := content.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	v := &nameValidator{}
	v.check("event", catalog.Events...)
	v.check("sequence", sequenceNames(catalog)...)
	v.check("level", catalog.Levels()...)

	if len(v.errors) > 0 {
		fmt.Fprintf(os.Stderr, "Validation errors in %s:\n", dir)
		for _, e := range v.errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		os.Exit(1)
	}

	fmt.Printf("Content is valid: %d events, %d items, %d sequences, %d levels\n",
		len(catalog.Events), len(catalog.Items), len(catalog.Sequences), len(catalog.Levels()))
}

func sequenceNames(catalog *content.Catalog) []string {
	names := make([]string, 0, len(catalog.Sequences))
	for name := range catalog.Sequences {
		names = append(names, name)
	}
	return names
}

// nameValidator enforces the authoring convention that identifiers are
// lowercase snake_case. The loader already guarantees referential
// integrity; this catches style drift before it spreads.
type nameValidator struct {
	errors []string
}

var validNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func (v *nameValidator) check(kind string, names ...string) {
	for _, name := range names {
		if !validNameRegex.MatchString(name) {
			v.errors = append(v.errors, fmt.Sprintf("%s %q should be lowercase snake_case", kind, name))
		}
	}
}
