package models

// Deployment describes where the credit program lives on a given network.
// Loaded from the deployment yaml file.
type Deployment struct {
	Network        string `yaml:"network"`
	ModuleAddress  string `yaml:"module_address"`
	PoolAddress    string `yaml:"pool_address"`
	StableMetadata string `yaml:"stable_metadata"`
	StableCoinType string `yaml:"stable_coin_type"`
}
