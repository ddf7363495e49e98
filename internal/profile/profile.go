// Package profile loads optional HCL files that supply defaults for the
// join/unjoin record, so site-wide values such as the domain and the target
// organizational unit do not have to be repeated on every command line.
//
// A profile is a flat set of attributes:
//
//	domain   = "corp.example.com"
//	ou       = "OU=Workstations,DC=corp,DC=example,DC=com"
//	user     = "CORP\\svc-join"
//	password = env("KCJOIN_PASSWORD")
//
// Values given on the command line always take precedence.
package profile

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/kcjoin/internal/ctxlog"
	"github.com/vk/kcjoin/internal/fsutil"
	"github.com/vk/kcjoin/internal/invoker"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// fileSchema is the decoding target for a single profile file. Pointers
// distinguish an absent attribute from an empty one.
type fileSchema struct {
	Host     *string `hcl:"host,optional"`
	User     *string `hcl:"user,optional"`
	Password *string `hcl:"password,optional"`
	OU       *string `hcl:"ou,optional"`
	Domain   *string `hcl:"domain,optional"`
	Unjoin   *bool   `hcl:"unjoin,optional"`
}

// Profile is the merged result of one or more profile files.
type Profile struct {
	Host     string
	User     string
	Password string
	OU       string
	Domain   string
	Unjoin   bool

	// Files lists the files that were read, in merge order.
	Files []string
}

// EnvFunc implements env(name), returning the value of an environment
// variable or "" when it is unset.
var EnvFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": EnvFunc,
		},
	}
}

// Load reads the profile at path. A directory is searched recursively for
// .hcl files, merged in lexical order with later files overriding earlier
// ones attribute by attribute.
func Load(ctx context.Context, path string) (*Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading profile.", "path", path)

	files, err := fsutil.ResolveFiles(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to locate profile %s: %w", path, err)
	}

	p := &Profile{}
	if len(files) == 0 {
		logger.Warn("No .hcl profile files found in path.", "path", path)
		return p, nil
	}

	parser := hclparse.NewParser()
	evalCtx := evalContext()
	for _, file := range files {
		schema, err := decodeFile(parser, evalCtx, file)
		if err != nil {
			return nil, err
		}
		p.merge(schema)
		p.Files = append(p.Files, file)
		logger.Debug("Profile file merged.", "path", file)
	}

	return p, nil
}

func decodeFile(parser *hclparse.Parser, evalCtx *hcl.EvalContext, filePath string) (*fileSchema, error) {
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile %s: %w", filePath, diags)
	}

	var schema fileSchema
	diags = gohcl.DecodeBody(file.Body, evalCtx, &schema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile %s: %w", filePath, diags)
	}
	return &schema, nil
}

func (p *Profile) merge(s *fileSchema) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Host, s.Host)
	set(&p.User, s.User)
	set(&p.Password, s.Password)
	set(&p.OU, s.OU)
	set(&p.Domain, s.Domain)
	if s.Unjoin != nil {
		p.Unjoin = *s.Unjoin
	}
}

// Apply fills the fields of req that the command line left empty. A profile
// can switch the request to unjoin mode but never back to join.
func (p *Profile) Apply(req *invoker.Request) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&req.Host, p.Host)
	fill(&req.User, p.User)
	fill(&req.Password, p.Password)
	fill(&req.OU, p.OU)
	fill(&req.Domain, p.Domain)
	if p.Unjoin {
		req.Unjoin = true
	}
}
