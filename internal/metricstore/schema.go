package metricstore

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// pointConfig is the HCL form of a single datapoint inside a metric block.
// Value is decoded as a cty.Value so users may write numeric expressions.
type pointConfig struct {
	Date  string    `hcl:"date"`
	Value cty.Value `hcl:"value"`
}

// metricConfig is the HCL form of a `metric "name" { ... }` block.
type metricConfig struct {
	Name        string         `hcl:"name,label"`
	LongName    string         `hcl:"long_name,optional"`
	Description string         `hcl:"description,optional"`
	Frequency   string         `hcl:"frequency"`
	Points      []*pointConfig `hcl:"point,block"`
}

// fileConfig is the top-level structure of a metric definition file.
type fileConfig struct {
	Metrics []*metricConfig `hcl:"metric,block"`
	Body    hcl.Body        `hcl:",remain"`
}
