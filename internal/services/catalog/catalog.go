package catalog

import (
	"fmt"
	"os"
	"strings"
)

// Category identifies which agent persona answers a message. The set is
// closed: it is the wire contract with the classification model, and labels
// must match exactly (case-insensitive, trimmed) or callers fall back to
// CategoryGeneral.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryCareer     Category = "career"
	CategoryResume     Category = "resume"
	CategoryInterview  Category = "interview"
	CategorySkills     Category = "skills"
	CategoryNetworking Category = "networking"
	CategoryJobSearch  Category = "job_search"
	CategorySalary     Category = "salary"
	CategoryResearch   Category = "research"
)

// DefaultCategory answers anything the router cannot place.
const DefaultCategory = CategoryGeneral

// Categories returns every member of the closed set.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryCareer,
		CategoryResume,
		CategoryInterview,
		CategorySkills,
		CategoryNetworking,
		CategoryJobSearch,
		CategorySalary,
		CategoryResearch,
	}
}

// ParseCategory matches s against the closed set, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return known, true
		}
	}
	return DefaultCategory, false
}

// Template holds the system instruction for one agent persona. Templates are
// immutable after catalog construction.
type Template struct {
	Category    Category
	Instruction string
}

// Catalog is a fixed Category -> Template mapping. The salary template embeds
// the occupational salary dataset, rendered once at construction.
type Catalog struct {
	templates map[Category]Template
}

// New builds the catalog, rendering salaryYAML into the salary template.
func New(salaryYAML []byte) (*Catalog, error) {
	salaryData, err := renderSalaryData(salaryYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to render salary dataset: %w", err)
	}

	templates := make(map[Category]Template, len(Categories()))
	for category, instruction := range instructions {
		templates[category] = Template{Category: category, Instruction: instruction}
	}
	templates[CategorySalary] = Template{
		Category:    CategorySalary,
		Instruction: fmt.Sprintf(salaryInstruction, salaryData),
	}

	return &Catalog{templates: templates}, nil
}

// Load builds the catalog from the salary dataset file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read salary dataset: %w", err)
	}
	return New(data)
}

// Resolve returns the template for category, falling back to the default
// category's template for anything outside the closed set.
func (c *Catalog) Resolve(category Category) Template {
	if t, ok := c.templates[category]; ok {
		return t
	}
	return c.templates[DefaultCategory]
}
