package config

// GetSalaryDataPath returns the YAML file holding the occupation salary
// reference data rendered into the salary agent prompt.
func GetSalaryDataPath() string {
	return GetEnvOrDefault("SALARY_DATA_PATH", "datasets/yr-earnings-occupation.yaml")
}
