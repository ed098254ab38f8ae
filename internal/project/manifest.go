package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"blc/internal/token"
)

// Manifest is a loaded bl.toml.
type Manifest struct {
	Path   string
	Root   string // directory containing the manifest
	Config Config
	// hasConditions is set when [language].conditions is present,
	// even if it is an empty list.
	hasConditions bool
}

type Config struct {
	Package  PackageConfig  `toml:"package"`
	Language LanguageConfig `toml:"language"`
	Check    CheckConfig    `toml:"check"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type LanguageConfig struct {
	// Conditions replaces the default condition set.
	Conditions []string `toml:"conditions"`
	// Keywords extends the six core keywords.
	Keywords []string `toml:"keywords"`
}

type CheckConfig struct {
	Root           string `toml:"root"`
	Jobs           int    `toml:"jobs"`
	MaxDiagnostics int    `toml:"max-diagnostics"`
	Cache          *bool  `toml:"cache"`
}

// Load finds bl.toml starting at startDir and decodes it.
// ok is false when no manifest exists.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadFile decodes the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Check.Jobs < 0 {
		return nil, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	if filepath.IsAbs(cfg.Check.Root) {
		return nil, fmt.Errorf("%s: [check].root must be relative to the manifest", path)
	}

	m := &Manifest{
		Path:          path,
		Root:          filepath.Dir(path),
		Config:        cfg,
		hasConditions: meta.IsDefined("language", "conditions"),
	}
	if _, err := m.Vocabulary(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Vocabulary builds the vocabulary described by [language].
// Without a [language].conditions key the default conditions apply.
func (m *Manifest) Vocabulary() (*token.Vocabulary, error) {
	if m == nil {
		return token.DefaultVocabulary(), nil
	}
	lang := m.Config.Language
	if !m.hasConditions && len(lang.Keywords) == 0 {
		return token.DefaultVocabulary(), nil
	}
	conds := token.DefaultConditions
	if m.hasConditions {
		conds = lang.Conditions
	}
	return token.NewVocabulary(lang.Keywords, conds)
}

// SourceRoot is the directory scanned by `check`.
func (m *Manifest) SourceRoot() string {
	if m.Config.Check.Root == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Check.Root))
}

// CacheEnabled reports [check].cache, defaulting to true.
func (m *Manifest) CacheEnabled() bool {
	if m == nil || m.Config.Check.Cache == nil {
		return true
	}
	return *m.Config.Check.Cache
}

// StarterManifest is written by `blc init`.
func StarterManifest(name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[package]\nname = %q\n\n", name)
	sb.WriteString("[language]\n")
	sb.WriteString("# conditions = [\"next-is-empty\", \"next-is-wall\"]\n")
	sb.WriteString("# keywords = [\"PROGRAM\", \"BEGIN\", \"INSTRUCTION\", \"IS\"]\n\n")
	sb.WriteString("[check]\nroot = \".\"\njobs = 0\nmax-diagnostics = 100\ncache = true\n")
	return sb.String()
}

// StarterProgram is the main.bl written by `blc init`.
const StarterProgram = `# Walk forward, turning at walls.
WHILE true DO
  IF next-is-wall THEN
    turnleft
  ELSE
    move
  END IF
END WHILE
`

// WriteStarter creates bl.toml and main.bl in dir. Existing files are
// never overwritten.
func WriteStarter(dir, name string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	files := []struct {
		name    string
		content string
	}{
		{ManifestName, StarterManifest(name)},
		{"main.bl", StarterProgram},
	}
	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				return written, fmt.Errorf("%s already exists", path)
			}
			return written, fmt.Errorf("failed to create %s: %w", path, err)
		}
		_, werr := fh.WriteString(f.content)
		cerr := fh.Close()
		if werr != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, werr)
		}
		if cerr != nil {
			return written, fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		written = append(written, path)
	}
	return written, nil
}
