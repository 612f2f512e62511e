package beatmapdoc

import (
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/diag"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
)

// Loader reads documents into projects.
type Loader interface {
	Load(path string) (*model.Project, error)
	LoadVersion(path string, version model.Version) (*model.Project, error)
	LoadWithReport(path string, version model.Version) (*model.Project, *diag.Report, error)
}

// Saver writes projects as documents of the latest generation.
type Saver interface {
	Save(p *model.Project) error
	SaveAs(p *model.Project, path string) error
	SaveAsBackup(p *model.Project, path string) error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

var (
	_ Loader = (*Engine)(nil)
	_ Saver  = (*Engine)(nil)
)
