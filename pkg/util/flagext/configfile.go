package flagext

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ConfigFiles is a repeatable flag naming YAML configuration files. Later
// files override values set by earlier ones.
type ConfigFiles []string

// String implements flag.Value
// Format: file1.yaml,file2.yaml
func (cfgFiles *ConfigFiles) String() string {
	return strings.Join(*cfgFiles, ",")
}

// Set implements flag.Value
func (cfgFiles *ConfigFiles) Set(value string) error {
	for _, f := range strings.Split(value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			*cfgFiles = append(*cfgFiles, f)
		}
	}
	return nil
}

// IsCumulative lets kingpin accept the flag more than once.
func (cfgFiles *ConfigFiles) IsCumulative() bool { return true }

// Load decodes every file into dst in order. Unknown fields are rejected.
func (cfgFiles ConfigFiles) Load(dst interface{}) error {
	for _, f := range cfgFiles {
		buf, err := os.ReadFile(f)
		if err != nil {
			return errors.Wrap(err, "reading config file")
		}
		if err := yaml.UnmarshalStrict(buf, dst); err != nil {
			return errors.Wrapf(err, "parsing config file %s", f)
		}
	}
	return nil
}
