package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// salaryDataset mirrors the shape of datasets/yr-earnings-occupation.yaml:
// annual median earnings keyed by occupation description.
type salaryDataset struct {
	Occupations []struct {
		Description string  `yaml:"description"`
		Median      float64 `yaml:"median"`
	} `yaml:"occupations"`
}

// renderSalaryData turns the YAML dataset into the plain-text block embedded
// in the salary persona's instruction.
func renderSalaryData(data []byte) (string, error) {
	var ds salaryDataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return "", err
	}
	if len(ds.Occupations) == 0 {
		return "", fmt.Errorf("salary dataset contains no occupations")
	}

	var b strings.Builder
	for _, occ := range ds.Occupations {
		fmt.Fprintf(&b, "%s: £%.0f median\n", occ.Description, occ.Median)
	}
	return b.String(), nil
}
