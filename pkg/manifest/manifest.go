package manifest

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/propkeygen/pkg/generator"
)

// DefaultName is the manifest file looked up in the working directory.
const DefaultName = "propkeygen.yaml"

// Manifest lists the files to generate in one run.
type Manifest struct {
	Targets []*generator.Options `yaml:"targets" json:"targets" mapstructure:"targets"`
}

// Load reads the targets from an already configured viper instance. A
// missing "targets" key yields an empty manifest.
func Load(v *viper.Viper) (*Manifest, error) {
	var m Manifest
	if !v.IsSet("targets") {
		return &m, nil
	}
	if err := v.UnmarshalKey("targets", &m.Targets); err != nil {
		return nil, errors.Wrap(err, "unmarshal manifest targets")
	}
	return &m, nil
}

// LoadFile reads a manifest from path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal manifest")
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create manifest directory")
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write manifest")
	}

	return nil
}

// Sample is the starter manifest written by the init command.
func Sample() *Manifest {
	return &Manifest{
		Targets: []*generator.Options{
			{
				ClassName:    "org.example.MessageKeys",
				SourceLayout: generator.LayoutNested,
				SourceAccess: generator.AccessPublic,
				Language:     generator.LanguageJava,
				SourceFiles:  []string{"src/main/resources/messages.properties"},
				OutDir:       generator.DefaultOutDir,
			},
		},
	}
}
