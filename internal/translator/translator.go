// Package translator turns an extracted application package into a Heat
// (HOT) template the orchestration backend can deploy.
//
// A package either ships a HOT template as its entry definition, which is
// copied as is, or a TOSCA service template whose Vdu.Compute, VduCp and
// VnfVirtualLink nodes are mapped onto servers and their networks.
package translator

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// TemplateFile is the name of the generated template inside a package directory.
const TemplateFile = "hot.yaml"

const (
	metaFile          = "TOSCA-Metadata/TOSCA.meta"
	definitionsDir    = "Definitions"
	hotVersion        = "2016-10-14"
	typeCompute       = "tosca.nodes.nfv.Vdu.Compute"
	typeConnection    = "tosca.nodes.nfv.VduCp"
	typeVirtualLink   = "tosca.nodes.nfv.VnfVirtualLink"
	defaultFlavor     = "m1.small"
	entryDefinitionKV = "Entry-Definitions"
)

// ErrNoDescriptor is returned when the package has no usable entry definition.
var ErrNoDescriptor = errors.New("package descriptor not found")

// CSAR translates CSAR style packages.
type CSAR struct {
	fs afero.Fs
}

func New(fsys afero.Fs) *CSAR {
	return &CSAR{fs: fsys}
}

// Translate writes <dir>/hot.yaml and returns its path.
func (c *CSAR) Translate(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	entry, err := c.entryDefinition(dir)
	if err != nil {
		return "", err
	}
	raw, err := afero.ReadFile(c.fs, filepath.Join(dir, entry))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDescriptor, err)
	}

	var st serviceTemplate
	if err := yaml.Unmarshal(raw, &st); err != nil {
		return "", fmt.Errorf("parse %s: %w", entry, err)
	}

	var out []byte
	if st.HeatTemplateVersion != nil {
		out = raw
	} else {
		tpl, err := toHOT(&st)
		if err != nil {
			return "", fmt.Errorf("translate %s: %w", entry, err)
		}
		if out, err = yaml.Marshal(tpl); err != nil {
			return "", err
		}
	}

	target := filepath.Join(dir, TemplateFile)
	if err := afero.WriteFile(c.fs, target, out, 0o640); err != nil {
		return "", err
	}
	return target, nil
}

// entryDefinition finds the descriptor: TOSCA.meta first, then the only YAML under Definitions/.
func (c *CSAR) entryDefinition(dir string) (string, error) {
	if meta, err := afero.ReadFile(c.fs, filepath.Join(dir, metaFile)); err == nil {
		sc := bufio.NewScanner(bytes.NewReader(meta))
		for sc.Scan() {
			k, v, ok := strings.Cut(sc.Text(), ":")
			if ok && strings.TrimSpace(k) == entryDefinitionKV {
				entry := path.Clean(strings.TrimSpace(v))
				if strings.HasPrefix(entry, "../") || path.IsAbs(entry) {
					return "", fmt.Errorf("%w: entry definition %q outside package", ErrNoDescriptor, entry)
				}
				return filepath.FromSlash(entry), nil
			}
		}
	}

	entries, err := afero.ReadDir(c.fs, filepath.Join(dir, definitionsDir))
	if err != nil {
		return "", ErrNoDescriptor
	}
	var candidates []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) != 1 {
		return "", fmt.Errorf("%w: %d candidate definitions", ErrNoDescriptor, len(candidates))
	}
	return filepath.Join(definitionsDir, candidates[0]), nil
}

type serviceTemplate struct {
	HeatTemplateVersion any    `yaml:"heat_template_version"`
	Description         string `yaml:"description"`
	TopologyTemplate    struct {
		NodeTemplates map[string]nodeTemplate `yaml:"node_templates"`
	} `yaml:"topology_template"`
}

type nodeTemplate struct {
	Type         string           `yaml:"type"`
	Properties   map[string]any   `yaml:"properties"`
	Requirements []map[string]any `yaml:"requirements"`
}

type hotTemplate struct {
	HeatTemplateVersion string                 `yaml:"heat_template_version"`
	Description         string                 `yaml:"description,omitempty"`
	Resources           map[string]hotResource `yaml:"resources"`
	Outputs             map[string]hotOutput   `yaml:"outputs,omitempty"`
}

type hotResource struct {
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

type hotOutput struct {
	Description string `yaml:"description,omitempty"`
	Value       any    `yaml:"value"`
}

func toHOT(st *serviceTemplate) (*hotTemplate, error) {
	nodes := st.TopologyTemplate.NodeTemplates
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	// vdu -> network names, in connection point order
	networks := map[string][]string{}
	for _, name := range names {
		n := nodes[name]
		if n.Type != typeConnection {
			continue
		}
		vdu := requirement(n, "virtual_binding")
		link := requirement(n, "virtual_link")
		if vdu == "" || link == "" {
			continue
		}
		networks[vdu] = append(networks[vdu], networkName(link, nodes[link]))
	}

	tpl := &hotTemplate{
		HeatTemplateVersion: hotVersion,
		Description:         st.Description,
		Resources:           map[string]hotResource{},
		Outputs:             map[string]hotOutput{},
	}
	for _, name := range names {
		n := nodes[name]
		if n.Type != typeCompute {
			continue
		}
		image := imageName(n)
		if image == "" {
			return nil, fmt.Errorf("node %s: no image", name)
		}
		props := map[string]any{
			"name":   stringProp(n.Properties, "name", name),
			"flavor": stringProp(n.Properties, "flavor", defaultFlavor),
			"image":  image,
		}
		if nets := networks[name]; len(nets) > 0 {
			list := make([]map[string]any, 0, len(nets))
			for _, net := range nets {
				list = append(list, map[string]any{"network": net})
			}
			props["networks"] = list
		}
		tpl.Resources[name] = hotResource{Type: "OS::Nova::Server", Properties: props}
		tpl.Outputs[name+"_info"] = hotOutput{
			Description: "server " + name,
			Value: map[string]any{
				"vmId":     map[string]any{"get_resource": name},
				"vncUrl":   map[string]any{"get_attr": []any{name, "console_urls", "novnc"}},
				"networks": map[string]any{"get_attr": []any{name, "addresses"}},
			},
		}
	}
	if len(tpl.Resources) == 0 {
		return nil, errors.New("no compute nodes")
	}
	return tpl, nil
}

// requirement reads a requirement in either short (`key: node`) or long (`key: {node: n}`) form.
func requirement(n nodeTemplate, key string) string {
	for _, r := range n.Requirements {
		switch v := r[key].(type) {
		case string:
			return v
		case map[string]any:
			if s, ok := v["node"].(string); ok {
				return s
			}
		}
	}
	return ""
}

func networkName(node string, vl nodeTemplate) string {
	if profile, ok := vl.Properties["vl_profile"].(map[string]any); ok {
		if s, ok := profile["network_name"].(string); ok && s != "" {
			return s
		}
	}
	return stringProp(vl.Properties, "network_name", node)
}

func imageName(n nodeTemplate) string {
	if sw, ok := n.Properties["sw_image_data"].(map[string]any); ok {
		if s, ok := sw["name"].(string); ok && s != "" {
			return s
		}
	}
	return stringProp(n.Properties, "image", "")
}

func stringProp(props map[string]any, key, def string) string {
	if s, ok := props[key].(string); ok && s != "" {
		return s
	}
	return def
}
