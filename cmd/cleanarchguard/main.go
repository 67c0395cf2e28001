// Command cleanarchguard fails when a module layer imports a layer above it,
// or when modules import each other outside the configured allowances.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-faster/errors"
	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"gopkg.in/yaml.v3"
)

type config struct {
	Version        int      `yaml:"version"`
	Root           string   `yaml:"root"`
	IgnoreTests    bool     `yaml:"ignore_tests"`
	IgnorePackages []string `yaml:"ignore_packages"`
	// SharedModules may be imported by every other module.
	SharedModules []string `yaml:"shared_modules"`
	// ModuleImports lists, per importing module, the modules it may use.
	ModuleImports     map[string][]string `yaml:"module_imports"`
	AllowedViolations []string            `yaml:"allow_violations"`
	Aliases           struct {
		Domain         []string `yaml:"domain"`
		Application    []string `yaml:"application"`
		Interfaces     []string `yaml:"interfaces"`
		Infrastructure []string `yaml:"infrastructure"`
	} `yaml:"aliases"`
}

func main() {
	fs := flag.NewFlagSet("cleanarchguard", flag.ExitOnError)
	configPath := fs.String("config", ".gocleanarch.yml", "path to the guard configuration")
	debug := fs.Bool("debug", false, "print go-cleanarch debug output")
	_ = fs.Parse(os.Args[1:])

	if *debug {
		cleanarch.Log.SetOutput(os.Stderr)
	}
	violations, err := run(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if len(violations) > 0 {
		for _, v := range violations {
			log.Println(v)
		}
		log.Fatalf("clean architecture check failed: %d violation(s)", len(violations))
	}
	log.Println("clean architecture check passed")
}

// run validates the tree named by the config and returns the violations
// left after the configured allowances.
func run(configPath string) ([]string, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return nil, errors.Wrap(err, "resolve root")
	}
	ok, found, err := cleanarch.NewValidator(layerAliases(cfg)).Validate(root, cfg.IgnoreTests, cfg.IgnorePackages)
	if err != nil {
		return nil, errors.Wrap(err, "run go-cleanarch")
	}
	if ok {
		return nil, nil
	}
	msgs := make([]string, 0, len(found))
	for _, v := range found {
		msgs = append(msgs, v.Error())
	}
	return filterMessages(msgs, cfg), nil
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*config, error) {
	cfg := &config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	return cfg, nil
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		return "", errors.New("root must not be empty")
	}
	return filepath.Abs(root)
}

// Module packages are laid out as domain, services, presentation and
// infrastructure; the generic go-cleanarch names are not used here because
// pkg/application would otherwise count as a layer.
var (
	defaultDomainAliases         = []string{"domain"}
	defaultApplicationAliases    = []string{"services"}
	defaultInterfacesAliases     = []string{"presentation", "handlers"}
	defaultInfrastructureAliases = []string{"infrastructure"}
)

func layerAliases(cfg *config) map[string]cleanarch.Layer {
	aliases := map[string]cleanarch.Layer{}
	applyAliases(aliases, cfg.Aliases.Domain, defaultDomainAliases, cleanarch.LayerDomain)
	applyAliases(aliases, cfg.Aliases.Application, defaultApplicationAliases, cleanarch.LayerApplication)
	applyAliases(aliases, cfg.Aliases.Interfaces, defaultInterfacesAliases, cleanarch.LayerInterfaces)
	applyAliases(aliases, cfg.Aliases.Infrastructure, defaultInfrastructureAliases, cleanarch.LayerInfrastructure)
	return aliases
}

func applyAliases(dst map[string]cleanarch.Layer, custom []string, defaults []string, layer cleanarch.Layer) {
	candidates := defaults
	if len(custom) > 0 {
		candidates = custom
	}

	for _, alias := range candidates {
		if alias == "" {
			continue
		}
		dst[alias] = layer
	}
}

var crossModulePattern = regexp.MustCompile(`between ([\w-]+) and ([\w-]+) modules`)

type allowances struct {
	shared   map[string]bool
	imports  map[string][]string
	patterns []string
}

func newAllowances(cfg *config) allowances {
	a := allowances{shared: map[string]bool{}, imports: cfg.ModuleImports}
	for _, m := range cfg.SharedModules {
		if m = strings.TrimSpace(m); m != "" {
			a.shared[m] = true
		}
	}
	for _, p := range cfg.AllowedViolations {
		if p != "" {
			a.patterns = append(a.patterns, p)
		}
	}
	return a
}

// permits reports whether msg names a shared module, a declared module
// import or an allowed pattern. Cross-module messages do not say which side
// imports, so a declared pair is accepted in either order.
func (a allowances) permits(msg string) bool {
	for _, p := range a.patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	m := crossModulePattern.FindStringSubmatch(msg)
	if len(m) != 3 {
		return false
	}
	from, to := m[1], m[2]
	return a.shared[from] || a.shared[to] || a.declared(from, to) || a.declared(to, from)
}

func (a allowances) declared(from, to string) bool {
	for _, m := range a.imports[from] {
		if strings.TrimSpace(m) == to {
			return true
		}
	}
	return false
}

func filterMessages(msgs []string, cfg *config) []string {
	if len(msgs) == 0 {
		return nil
	}
	allow := newAllowances(cfg)
	filtered := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if !allow.permits(msg) {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}
