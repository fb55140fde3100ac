package loader

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/roach88/codespawn/internal/config"
	"github.com/roach88/codespawn/internal/ir"
)

// document is the on-disk shape shared by every format.
type document struct {
	Items   []itemDoc            `json:"items" yaml:"items" toml:"items"`
	Configs map[string]configDoc `json:"configs,omitempty" yaml:"configs,omitempty" toml:"configs"`
}

type itemDoc struct {
	Kind      string    `json:"kind" yaml:"kind" toml:"kind"`
	Name      scalar    `json:"name,omitempty" yaml:"name,omitempty" toml:"name"`
	Type      scalar    `json:"type,omitempty" yaml:"type,omitempty" toml:"type"`
	Value     scalar    `json:"value,omitempty" yaml:"value,omitempty" toml:"value"`
	Qualifier *scalar   `json:"qualifier,omitempty" yaml:"qualifier,omitempty" toml:"qualifier"`
	Attribute scalar    `json:"attribute,omitempty" yaml:"attribute,omitempty" toml:"attribute"`
	Children  []itemDoc `json:"children,omitempty" yaml:"children,omitempty" toml:"children"`
}

type configDoc struct {
	Types  map[string]string `json:"types,omitempty" yaml:"types,omitempty" toml:"types"`
	Names  map[string]string `json:"names,omitempty" yaml:"names,omitempty" toml:"names"`
	Global map[string]any    `json:"global,omitempty" yaml:"global,omitempty" toml:"global"`
}

// Result is the decoded content of a document.
type Result struct {
	Items   []*ir.Node
	Configs map[ir.Lang]*config.Config
}

// Config returns the configuration for lang, or nil when there is none.
func (r *Result) Config(lang ir.Lang) *config.Config {
	if r == nil {
		return nil
	}
	return r.Configs[lang]
}

// convert turns a decoded document into a Result.
func (d *document) convert() (*Result, error) {
	res := &Result{
		Items:   make([]*ir.Node, 0, len(d.Items)),
		Configs: make(map[ir.Lang]*config.Config, len(d.Configs)),
	}
	for i := range d.Items {
		res.Items = append(res.Items, d.Items[i].node(fmt.Sprintf("items[%d]", i)))
	}

	// Sorted for deterministic error reporting.
	keys := make([]string, 0, len(d.Configs))
	for k := range d.Configs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lang, ok := ir.ParseLang(k)
		if !ok {
			return nil, &LoadError{
				Code:    ErrCodeUnknownLang,
				Message: fmt.Sprintf("configs: unknown language %q", k),
			}
		}
		res.Configs[lang] = d.Configs[k].config()
	}
	return res, nil
}

func (it *itemDoc) node(path string) *ir.Node {
	kind, ok := ir.ParseKind(it.Kind)
	if !ok {
		slog.Warn("unknown node kind, rendering nothing", "kind", it.Kind, "path", path)
	}
	n := ir.NewNode(kind)
	if it.Name != "" {
		n.Set(ir.AttrName, string(it.Name))
	}
	if it.Type != "" {
		n.Set(ir.AttrType, string(it.Type))
	}
	if it.Value != "" {
		n.Set(ir.AttrValue, string(it.Value))
	}
	if it.Qualifier != nil {
		n.Set(ir.AttrQualifier, string(*it.Qualifier))
	}
	if it.Attribute != "" {
		n.Set(ir.AttrText, string(it.Attribute))
	}
	for i := range it.Children {
		n.Add(it.Children[i].node(fmt.Sprintf("%s.children[%d]", path, i)))
	}
	return n
}

func (c configDoc) config() *config.Config {
	cfg := &config.Config{Types: c.Types, Names: c.Names}
	if len(c.Global) > 0 {
		cfg.Global = make(map[string]string, len(c.Global))
		for k, v := range c.Global {
			cfg.Global[k] = fmt.Sprint(v)
		}
	}
	return cfg
}
