package hcl

import "github.com/hashicorp/hcl/v2"

// manifestFile is the top-level structure of an HCL manifest.
type manifestFile struct {
	Output  string         `hcl:"output,optional"`
	Globals []*globalBlock `hcl:"global,block"`
	Texts   []*textsBlock  `hcl:"texts,block"`
}

// globalBlock holds build-wide options as plain attributes.
type globalBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// textsBlock selects resources by glob. Every attribute other than include
// and exclude is per-resource metadata.
type textsBlock struct {
	Name    string   `hcl:"name,label"`
	Include []string `hcl:"include"`
	Exclude []string `hcl:"exclude,optional"`
	Body    hcl.Body `hcl:",remain"`
}
