// Package rootfile reads entry counts of trees stored in ROOT files.
package rootfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/AliceO2Group/eventstat/internal/model"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// File is an open ROOT file. It must be closed after use.
type File struct {
	path string
	file *riofs.File
}

func Open(path string) (*File, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ROOT file %s: %w", path, err)
	}
	return &File{path: path, file: f}, nil
}

func (f *File) Path() string {
	return f.path
}

// Close releases the file. Calling it more than once is a no-op.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	if err != nil {
		return fmt.Errorf("closing ROOT file %s: %w", f.path, err)
	}
	return nil
}

// Names returns the names of the top-level objects in storage order.
// Multiple cycles of the same object are reported once.
func (f *File) Names() []string {
	if f.file == nil {
		return nil
	}
	return names(f.file)
}

// EntryCount returns the number of entries of a top-level tree.
func (f *File) EntryCount(name string) model.TableCount {
	if f.file == nil {
		return model.TableCount{Path: f.path, Name: name, Status: model.StatusReadFailed, Err: errClosed}
	}
	return entryCount(f.file, f.path, name)
}

// Group is a top-level directory of a ROOT file.
type Group struct {
	Name string
	path string
	dir  riofs.Directory
}

// Groups returns top-level directories whose name starts with prefix.
// Objects with the prefix, which are not directories, are skipped.
func (f *File) Groups(ctx context.Context, prefix string) ([]Group, error) {
	if f.file == nil {
		return nil, errClosed
	}
	var groups []Group
	for _, name := range names(f.file) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		obj, err := f.file.Get(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", name, f.path, err)
		}
		dir, ok := obj.(riofs.Directory)
		if !ok {
			slog.WarnContext(ctx, "not a directory, skipping", "path", f.path, "name", name, "class", obj.Class())
			continue
		}
		groups = append(groups, Group{
			Name: name,
			path: f.path + ":" + name,
			dir:  dir,
		})
	}
	return groups, nil
}

// Tables returns names of group members matching re in storage order.
func (g Group) Tables(re *regexp.Regexp) []string {
	var ret []string
	for _, name := range names(g.dir) {
		if re.MatchString(name) {
			ret = append(ret, name)
		}
	}
	return ret
}

// EntryCount returns the number of entries of a tree in the group.
func (g Group) EntryCount(name string) model.TableCount {
	return entryCount(g.dir, g.path, name)
}

var errClosed = errors.New("rootfile: file already closed")

func names(dir riofs.Directory) []string {
	keys := dir.Keys()
	ret := make([]string, 0, len(keys))
	for _, key := range keys {
		name := key.Name()
		if slices.Contains(ret, name) {
			continue
		}
		ret = append(ret, name)
	}
	return ret
}

func entryCount(dir riofs.Directory, path, name string) model.TableCount {
	ret := model.TableCount{Path: path, Name: name}
	if !slices.Contains(names(dir), name) {
		ret.Status = model.StatusNoTable
		ret.Err = fmt.Errorf("%s: no object named %q", path, name)
		return ret
	}
	obj, err := dir.Get(name)
	if err != nil {
		ret.Status = model.StatusReadFailed
		ret.Err = fmt.Errorf("%s: reading %q: %w", path, name, err)
		return ret
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		ret.Status = model.StatusNotTree
		ret.Err = fmt.Errorf("%s: %q is a %s, not a tree", path, name, obj.Class())
		return ret
	}
	if n := tree.Entries(); n > 0 {
		ret.Entries = model.EventCount(n)
	}
	ret.Status = model.StatusCounted
	return ret
}
