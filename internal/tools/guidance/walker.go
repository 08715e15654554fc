package guidance

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmbeddedFS is a package-level variable that can be set with embedded
// recipe files.
var EmbeddedFS embed.FS

// WalkConfigDirectory loads all YAML recipe definitions, preferring the
// embedded filesystem and falling back to the OS filesystem for development.
func WalkConfigDirectory(configDir string) ([]*RecipeConfig, error) {
	configs, err := walkEmbeddedConfigs()
	if err == nil && len(configs) > 0 {
		slog.Info("loaded recipes from embedded filesystem", "count", len(configs))
		return configs, nil
	}

	return walkOSFilesystem(configDir)
}

func walkEmbeddedConfigs() ([]*RecipeConfig, error) {
	var configs []*RecipeConfig

	if _, err := fs.Stat(EmbeddedFS, "."); err != nil {
		return nil, fmt.Errorf("embedded FS not available")
	}

	err := fs.WalkDir(EmbeddedFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".yaml") && !strings.HasSuffix(d.Name(), ".yml") {
			return nil
		}

		data, err := EmbeddedFS.ReadFile(path)
		if err != nil {
			slog.Error("failed to read embedded recipe", "path", path, "error", err)
			return err
		}

		config, err := parseRecipeConfig(data, path)
		if err != nil {
			slog.Error("failed to parse embedded recipe", "path", path, "error", err)
			return err
		}

		configs = append(configs, config)
		slog.Debug("loaded recipe from embedded FS", "recipe", config.Name, "category", config.Category, "path", path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk embedded recipes: %w", err)
	}

	return configs, nil
}

func walkOSFilesystem(configDir string) ([]*RecipeConfig, error) {
	var configs []*RecipeConfig

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		slog.Warn("recipe directory does not exist", "dir", configDir)
		return configs, nil
	}

	err := filepath.Walk(configDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			slog.Error("error accessing path", "path", path, "error", err)
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(info.Name(), ".yaml") && !strings.HasSuffix(info.Name(), ".yml") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("failed to read recipe file", "path", path, "error", err)
			return err
		}

		relPath, _ := filepath.Rel(configDir, path)
		config, err := parseRecipeConfig(data, relPath)
		if err != nil {
			slog.Error("failed to parse recipe", "path", path, "error", err)
			return err
		}

		configs = append(configs, config)
		slog.Debug("loaded recipe from filesystem", "recipe", config.Name, "category", config.Category, "path", path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk recipe directory: %w", err)
	}

	return configs, nil
}

func parseRecipeConfig(data []byte, path string) (*RecipeConfig, error) {
	var config RecipeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Category = deriveCategoryFromPath(path)

	if config.Name == "" {
		return nil, fmt.Errorf("recipe name is required in config file: %s", path)
	}
	if config.Description == "" {
		return nil, fmt.Errorf("recipe description is required in config file: %s", path)
	}
	if err := validateParameters(config.Parameters); err != nil {
		return nil, fmt.Errorf("invalid parameters in %s: %w", path, err)
	}

	return &config, nil
}

func validateParameters(params []ParameterConfig) error {
	validTypes := map[string]bool{
		"string": true, "integer": true, "number": true,
		"boolean": true, "array": true, "object": true,
	}
	names := make(map[string]bool)

	for i, param := range params {
		if param.Name == "" {
			return fmt.Errorf("parameter[%d] name is required", i)
		}
		if names[param.Name] {
			return fmt.Errorf("duplicate parameter name '%s'", param.Name)
		}
		names[param.Name] = true

		if param.Type != "" && !validTypes[param.Type] {
			return fmt.Errorf("parameter '%s' has invalid type '%s'", param.Name, param.Type)
		}
	}

	return nil
}

// deriveCategoryFromPath extracts the category from the file path.
// Example: "tools/config/timeseries/investigate-sensor-gaps.yaml" -> "timeseries"
func deriveCategoryFromPath(path string) string {
	path = filepath.ToSlash(path)
	parts := strings.Split(path, "/")

	for i, part := range parts {
		if part == "config" && i+1 < len(parts) {
			return parts[i+1]
		}
	}

	if len(parts) >= 2 {
		if parts[0] == "tools" && len(parts) >= 3 {
			return parts[1]
		}
		return parts[0]
	}

	return "general"
}
