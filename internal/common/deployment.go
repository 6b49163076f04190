package common

import (
	"fmt"
	"os"
	"path/filepath"

	"creditline-client-go/internal/models"

	"gopkg.in/yaml.v2"
)

type deploymentsFile struct {
	Deployments []models.Deployment `yaml:"deployments"`
}

// LoadDeployment reads the deployment yaml and returns the entry for the
// requested network. Every returned deployment has its required address
// fields populated.
func LoadDeployment(deploymentFile, network string) (*models.Deployment, error) {
	var path string
	if filepath.IsAbs(deploymentFile) {
		path = deploymentFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, deploymentFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", deploymentFile, err)
	}

	var file deploymentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", deploymentFile, err)
	}

	for i, dep := range file.Deployments {
		if dep.Network != network {
			continue
		}
		if dep.ModuleAddress == "" {
			return nil, fmt.Errorf("deployment at index %d missing module_address", i)
		}
		if dep.PoolAddress == "" {
			return nil, fmt.Errorf("deployment at index %d missing pool_address", i)
		}
		return &dep, nil
	}

	return nil, fmt.Errorf("no deployment for network %q in %s", network, deploymentFile)
}
