// Package config loads the dialect toggles that change how the parser
// reads a source file, the way the teacher's mods package loads a module
// file: a small TOML document unmarshaled into a typed struct.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// FileName is the dialect file a source directory may carry alongside its
// sources, analogous to the teacher's common.ModuleFileName.
const FileName = "dialect.toml"

// tomlDialectFile mirrors the on-disk shape; Dialect is the struct the
// rest of the compiler actually consumes, kept separate so toml struct
// tags don't leak into scanner/parser code the way tomlModule is kept
// separate from ChaiModule in the teacher.
type tomlDialectFile struct {
	Dialect *tomlDialect `toml:"dialect"`
}

type tomlDialect struct {
	RequireSemicolons        bool `toml:"require-semicolons"`
	RequireNewDecls          bool `toml:"require-new-decls"`
	AllowDeprecatedTypeNames bool `toml:"allow-deprecated-type-names"`
}

// Dialect toggles the parser's ambiguity-resolution defaults:
//   - RequireSemicolons: strict statement terminators instead of
//     newline-sensitive ones (scanner's requireSemicolons()).
//   - RequireNewDecls: report NewDeclsRequired for each old-style
//     declarator ("new x", "Tag:x"); the declaration is still parsed. A
//     bare "x[5]" declarator is not flagged.
//   - AllowDeprecatedTypeNames: suppress the TypeIsDeprecated warning for
//     "Float"/"String"/"_" old-style type tags.
type Dialect struct {
	RequireSemicolons        bool
	RequireNewDecls          bool
	AllowDeprecatedTypeNames bool
}

// Default returns the dialect used when no dialect.toml is present:
// newline-sensitive terminators, both declaration styles accepted,
// deprecated type names accepted with a warning.
func Default() *Dialect {
	return &Dialect{
		RequireSemicolons:        false,
		RequireNewDecls:          false,
		AllowDeprecatedTypeNames: false,
	}
}

// Load reads dialect.toml from dir, if present, and overlays it onto
// Default(). A missing file is not an error -- Default() alone is a
// complete, valid dialect.
func Load(dir string) (*Dialect, error) {
	d := Default()

	path := filepath.Join(dir, FileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	tdf := &tomlDialectFile{}
	if err := toml.Unmarshal(buf, tdf); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	if tdf.Dialect != nil {
		d.RequireSemicolons = tdf.Dialect.RequireSemicolons
		d.RequireNewDecls = tdf.Dialect.RequireNewDecls
		d.AllowDeprecatedTypeNames = tdf.Dialect.AllowDeprecatedTypeNames
	}

	return d, nil
}
