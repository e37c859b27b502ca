// Package tomlconfig implements the three-layer TOML configuration
// merge of SPEC_FULL.md §4.2: a server-level rs-mock-server.toml, any
// number of ancestor config.toml files, and a sibling <stem>.toml next
// to a mock file. Parsing uses github.com/BurntSushi/toml, the one
// TOML library anywhere in the retrieved example pack
// (theanswer42-bt-go/internal/config/config.go).
package tomlconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/idmanager"
)

// ServerFile is the root rs-mock-server.toml.
type ServerFile struct {
	Server ServerSection `toml:"server"`
}

// ServerSection is the [server] table of rs-mock-server.toml.
type ServerSection struct {
	Port          *int    `toml:"port"`
	Folder        *string `toml:"folder"`
	EnableCORS    *bool   `toml:"enable_cors"`
	AllowedOrigin *string `toml:"allowed_origin"`
}

// File is one config.toml or <stem>.toml layer.
type File struct {
	Route      *RouteSection      `toml:"route"`
	Collection *CollectionSection `toml:"collection"`
	Auth       *AuthSection       `toml:"auth"`
	Upload     *UploadSection     `toml:"upload"`
}

// RouteSection carries the two attributes that are inherited down the
// tree (delay, protect) plus remap, which applies only at its own file.
type RouteSection struct {
	Delay  *int    `toml:"delay"`
	Remap  *string `toml:"remap"`
	Protect *bool  `toml:"protect"`
}

// CollectionSection configures the collection backing a REST group.
type CollectionSection struct {
	Name  *string `toml:"name"`
	IDKey string  `toml:"id_key"`
	IDType string `toml:"id_type"`
}

// AuthSection configures an {auth} route group.
type AuthSection struct {
	UsernameField string `toml:"username_field"`
	PasswordField string `toml:"password_field"`
	CookieName    string `toml:"cookie_name"`
	JWTSecret     string `toml:"jwt_secret"`
	LoginRoute    string `toml:"login_route"`
	LogoutRoute   string `toml:"logout_route"`
	UsersRoute    string `toml:"users_route"`
}

// UploadSection configures an {upload} route group.
type UploadSection struct {
	Temporary *bool `toml:"temporary"`
}

// Env is the inherited recursion environment threaded explicitly
// through the route builder's tree walk (DESIGN NOTES §9): only
// Protected and DelayMS survive from ancestor to descendant.
type Env struct {
	Protected bool
	DelayMS   int
}

// Effective is the fully merged configuration for one route.
type Effective struct {
	DelayMS int
	Remap   string
	Protect bool

	Collection CollectionSection
	Auth       AuthSection
	Upload     UploadSection
}

// Loader reads rs-mock-server.toml once at startup and merges
// config.toml/<stem>.toml layers on demand during the tree walk.
type Loader struct {
	Server ServerSection
}

// Load reads the root rs-mock-server.toml if present; its absence is
// not an error, since every field defaults sanely.
func Load(path string) (*Loader, error) {
	l := &Loader{}
	if path == "" {
		return l, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return l, nil
	}

	var sf ServerFile
	if _, err := toml.DecodeFile(path, &sf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w: %v", path, apperr.ErrTomlParseFailure, err)
	}
	l.Server = sf.Server
	return l, nil
}

// ReadLayer parses a single config.toml/<stem>.toml file.
func ReadLayer(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w: %v", path, apperr.ErrTomlParseFailure, err)
	}
	return &f, nil
}

// Fold left-folds a layer into the inherited Env, producing the Env
// descendants of this directory should see. Only delay/protect
// propagate.
func (e Env) Fold(f *File) Env {
	out := e
	if f == nil || f.Route == nil {
		return out
	}
	if f.Route.Delay != nil {
		out.DelayMS = *f.Route.Delay
	}
	if f.Route.Protect != nil {
		out.Protected = out.Protected || *f.Route.Protect
	}
	return out
}

// Effective produces the leaf Effective config for a file, applying the
// inherited Env plus this file's own local layer (which may override
// remap, and carries collection/auth/upload tables that never
// propagate further).
func (e Env) Effective(local *File) Effective {
	out := Effective{
		DelayMS: e.DelayMS,
		Protect: e.Protected,
	}
	if local == nil {
		return out
	}
	if local.Route != nil {
		if local.Route.Delay != nil {
			out.DelayMS = *local.Route.Delay
		}
		if local.Route.Protect != nil {
			out.Protect = out.Protect || *local.Route.Protect
		}
		if local.Route.Remap != nil {
			out.Remap = *local.Route.Remap
		}
	}
	if local.Collection != nil {
		out.Collection = *local.Collection
	}
	if local.Auth != nil {
		out.Auth = *local.Auth
	}
	if local.Upload != nil {
		out.Upload = *local.Upload
	}
	return out
}

// IDPolicy resolves the CollectionSection's id_type string into an
// idmanager.Policy, defaulting to Uuid.
func (c CollectionSection) IDPolicy() idmanager.Policy {
	return idmanager.ParsePolicy(c.IDType)
}

// StemConfigPath returns the sibling <stem>.toml path for a mock file,
// e.g. "get{1-3}.json" -> "get{1-3}.toml".
func StemConfigPath(mockFilePath string) string {
	dir := filepath.Dir(mockFilePath)
	base := filepath.Base(mockFilePath)
	stem := base
	if idx := indexOfFirstDot(base); idx >= 0 {
		stem = base[:idx]
	}
	return filepath.Join(dir, stem+".toml")
}

func indexOfFirstDot(s string) int {
	for i, r := range s {
		if r == '.' {
			return i
		}
	}
	return -1
}
