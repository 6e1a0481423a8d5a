package app

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/utils"
)

// Config combines environment settings with the per-project yaml file at
// {project}/pipeline/project.yaml. Environment values win so a shell can
// override a checked-in project config.
type Config struct {
	ProjectRoot  string `yaml:"project_root"`
	SoftwareName string `yaml:"software_name"`
	ToolPath     string `yaml:"tool_path"`
	ScriptPath   string `yaml:"script_path"`
	Port         int    `yaml:"port"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		SoftwareName: "maya",
		Port:         8080,
	}

	projectRoot := utils.GetEnv("PIPELINE_PROJECT_ROOT", "", log)
	if projectRoot == "" {
		return Config{}, fmt.Errorf("PIPELINE_PROJECT_ROOT is not set")
	}
	cfg.ProjectRoot = projectRoot

	yamlPath := filepath.Join(projectRoot, "pipeline", "project.yaml")
	if raw, err := os.ReadFile(yamlPath); err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", yamlPath, err)
		}
		// The yaml file never relocates the project it lives in.
		cfg.ProjectRoot = projectRoot
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read %s: %w", yamlPath, err)
	}

	cfg.SoftwareName = utils.GetEnv("PIPELINE_SOFTWARE", cfg.SoftwareName, log)
	cfg.ToolPath = utils.GetEnv("PIPELINE_TOOL_PATH", cfg.ToolPath, log)
	cfg.ScriptPath = utils.GetEnv("PIPELINE_SCRIPT_PATH", cfg.ScriptPath, log)
	cfg.Port = utils.GetEnvAsInt("PIPELINE_PORT", cfg.Port, log)

	return cfg, nil
}
