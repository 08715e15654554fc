// Package guidance loads YAML-defined analysis recipes and exposes each as
// a read-only MCP tool. A recipe tool returns curated guidance text — intent,
// reference SQL, schema hints — instead of querying the database, giving the
// agent a vetted starting point for the primitive query tools.
package guidance

// RecipeConfig represents the YAML definition of one guidance recipe.
type RecipeConfig struct {
	// Name is the unique tool identifier (e.g., "investigate-sensor-gaps").
	Name string `yaml:"name"`

	// Description provides the operational description of the recipe.
	Description string `yaml:"description"`

	// Intent tells the agent WHEN to reach for this recipe.
	Intent string `yaml:"intent,omitempty"`

	// ExpectedFindings describes the data conditions the recipe surfaces.
	ExpectedFindings []FindingConfig `yaml:"expected_findings,omitempty"`

	// ReferenceSQL is the canonical read-only statement the agent can adapt.
	ReferenceSQL string `yaml:"reference_sql,omitempty"`

	// ReferenceSchema hints at the stables, columns and tags involved.
	ReferenceSchema *ReferenceSchemaConfig `yaml:"reference_schema,omitempty"`

	// Parameters defines the placeholders in ReferenceSQL.
	Parameters []ParameterConfig `yaml:"parameters,omitempty"`

	// Category is derived from the folder structure, not from YAML.
	Category string `yaml:"-"`
}

// FindingConfig describes one condition the recipe is built to surface.
type FindingConfig struct {
	// Subject is what the finding is about (e.g., "sub-table", "tag group").
	Subject string `yaml:"subject"`

	// Signal is the shape of the data that indicates the finding.
	Signal string `yaml:"signal"`

	// Columns are the measurement columns involved.
	Columns []string `yaml:"columns,omitempty"`
}

// ReferenceSchemaConfig hints at the catalog objects the recipe expects.
type ReferenceSchemaConfig struct {
	// Stables are the super-table names the reference SQL assumes.
	Stables []string `yaml:"stables,omitempty"`

	// Columns are measurement columns referenced by the recipe.
	Columns []string `yaml:"columns,omitempty"`

	// Tags are tag columns useful for grouping or filtering.
	Tags []string `yaml:"tags,omitempty"`
}

// ParameterConfig defines a typed placeholder in the reference SQL.
type ParameterConfig struct {
	// Name is the placeholder identifier.
	Name string `yaml:"name"`

	// Type is the JSON Schema type (string, integer, number, boolean, array, object).
	Type string `yaml:"type"`

	// Description explains the placeholder's purpose.
	Description string `yaml:"description,omitempty"`

	// Default value (type depends on Type field).
	Default any `yaml:"default,omitempty"`

	// Required indicates if this placeholder has no usable default.
	Required bool `yaml:"required,omitempty"`
}
