package payroll

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var errInvalidArtifactName = errors.New("invalid artifact name")

// ArtifactName is the file name a payslip's document is stored under.
func ArtifactName(employeeID int64, period string) string {
	return fmt.Sprintf("payslip-%d-%s.pdf", employeeID, period)
}

type ArtifactStore interface {
	Exists(name string) (bool, error)
	Save(name string, data []byte) error
	Open(name string) ([]byte, error)
}

// DirArtifactStore keeps artifacts as flat files in one directory.
type DirArtifactStore struct {
	dir string
}

func NewDirArtifactStore(dir string) (*DirArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &DirArtifactStore{dir: dir}, nil
}

func (d *DirArtifactStore) path(name string) (string, error) {
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return "", errInvalidArtifactName
	}
	return filepath.Join(d.dir, name), nil
}

func (d *DirArtifactStore) Exists(name string) (bool, error) {
	p, err := d.path(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Save writes through a temp file so readers never see a partial document.
func (d *DirArtifactStore) Save(name string, data []byte) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Open returns an error wrapping fs.ErrNotExist for a missing artifact.
func (d *DirArtifactStore) Open(name string) ([]byte, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}
