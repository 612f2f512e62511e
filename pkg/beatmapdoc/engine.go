// Package beatmapdoc loads and saves beatmap project documents. Loading
// accepts every historical schema generation; saving always writes the latest
// one and replaces the destination only once the new file is complete.
package beatmapdoc

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/diag"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/gridfix"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/resolve"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/schema"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/storage"
	"github.com/himanishpuri/beatmapdoc/pkg/logger"
	"github.com/himanishpuri/beatmapdoc/pkg/utils"
)

// AutoVersion asks the load calls to detect the generation from the file.
const AutoVersion model.Version = -1

// Engine is safe to share; the projects it returns are not.
type Engine struct {
	log    Logger
	config *Config
}

func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	if err := cfg.DefaultSettings.Validate(); err != nil {
		return nil, Error.New("default settings: %v", err)
	}

	return &Engine{
		log:    cfg.Logger,
		config: cfg,
	}, nil
}

// DefaultSettings returns the settings loaded projects are reconciled with.
func (e *Engine) DefaultSettings() model.ScoreSettings {
	return e.config.DefaultSettings
}

// Load reads the document at path, detecting its generation.
func (e *Engine) Load(path string) (*model.Project, error) {
	p, _, err := e.LoadWithReport(path, AutoVersion)
	return p, err
}

// LoadVersion reads the document at path as the given generation.
func (e *Engine) LoadVersion(path string, version model.Version) (*model.Project, error) {
	p, _, err := e.LoadWithReport(path, version)
	return p, err
}

// LoadWithReport is Load or LoadVersion that also returns the non-fatal
// findings. Either a fully resolved project or an error is returned, never
// both.
func (e *Engine) LoadWithReport(path string, version model.Version) (*model.Project, *diag.Report, error) {
	if err := checkRequestedVersion(version); err != nil {
		return nil, nil, err
	}

	c, err := storage.Open(path)
	if err != nil {
		if errors.Is(err, storage.ErrNoDocument) {
			return nil, nil, ErrFileNotFound.New("%s", path)
		}
		return nil, nil, err
	}
	defer c.Close()

	e.log.Infof("Loading document: %s", path)
	report := diag.NewReport(e.log)

	if version == AutoVersion {
		if version, err = schema.DetectVersion(c, report); err != nil {
			return nil, nil, err
		}
	}
	e.log.Debugf("Reading %s as generation %s", path, version)

	p, err := schema.Read(c, version, e.config.DefaultSettings, report)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := resolve.Project(p, report); err != nil {
		return nil, nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	res, err := gridfix.Fixup(p, e.config.DefaultSettings, report)
	if err != nil {
		return nil, nil, fmt.Errorf("rescaling %s: %w", path, err)
	}
	if res.Rescaled {
		e.log.Infof("Rescaled grid from %d to %d lines per bar, %d notes dropped", res.OldGrids, res.NewGrids, res.Dropped)
	}

	model.ReserveNoteIDs(p.MaxNoteID())
	p.SaveFileName = path
	p.IsChanged = res.Rescaled || version != model.CurrentVersion

	e.log.Infof("Loaded %s: %d notes, %d diagnostics", path, countNotes(p), report.Len())
	return p, report, nil
}

func checkRequestedVersion(version model.Version) error {
	if version == AutoVersion {
		return nil
	}
	if version == model.VersionUnknown {
		return schema.ErrUnknownVersion.New("the unknown version sentinel cannot be loaded")
	}
	for _, v := range model.KnownVersions() {
		if v == version {
			return nil
		}
	}
	return schema.ErrUnknownVersion.New("generation %d", int(version))
}

// Save writes p to the document it is bound to.
func (e *Engine) Save(p *model.Project) error {
	if p == nil {
		return Error.New("nil project")
	}
	if p.SaveFileName == "" {
		return Error.New("project is not bound to a file, use SaveAs")
	}
	if err := e.write(p, p.SaveFileName); err != nil {
		return err
	}
	p.Version = model.CurrentVersion
	p.IsChanged = false
	return nil
}

// SaveAs writes p to path and binds the project to it.
func (e *Engine) SaveAs(p *model.Project, path string) error {
	if p == nil {
		return Error.New("nil project")
	}
	if err := e.write(p, path); err != nil {
		return err
	}
	p.SaveFileName = path
	p.Version = model.CurrentVersion
	p.IsChanged = false
	return nil
}

// SaveAsBackup writes a copy of p to path. The project keeps its binding and
// dirty flag.
func (e *Engine) SaveAsBackup(p *model.Project, path string) error {
	if p == nil {
		return Error.New("nil project")
	}
	return e.write(p, path)
}

// write stores p into a fresh file and renames it over path once the
// transaction has committed. On any failure the fresh file is removed and
// path is left as it was.
func (e *Engine) write(p *model.Project, path string) (err error) {
	if path == "" {
		return Error.New("empty destination path")
	}
	if err := resolve.ValidateProject(p); err != nil {
		return err
	}

	if err := utils.MakeDir(filepath.Dir(path)); err != nil {
		return Error.New("creating %s: %v", filepath.Dir(path), err)
	}
	tmp := utils.TempSibling(path)
	if e.config.TempDir != "" {
		tmp = filepath.Join(e.config.TempDir, filepath.Base(tmp))
		if !utils.SameDir(tmp, path) {
			e.log.Debugf("Temp dir %s must be on the same filesystem as %s", e.config.TempDir, path)
		}
	}

	e.log.Debugf("Writing %s through %s", path, tmp)
	c, err := storage.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = c.Close()
			_ = utils.RemoveFile(tmp)
			_ = utils.RemoveFile(tmp + "-journal")
			e.log.Errorf("Saving %s failed: %v", path, err)
		}
	}()

	if err = schema.Write(c, p); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = c.Close(); err != nil {
		return err
	}
	if err = utils.MoveFile(tmp, path); err != nil {
		return Error.Wrap(err)
	}

	e.log.Infof("Saved %s: %d notes", path, countNotes(p))
	return nil
}

func countNotes(p *model.Project) int {
	n := 0
	for _, s := range p.Scores() {
		n += len(s.Notes())
	}
	return n
}
