package filesystem_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/stdlibsync/internal/filesystem"
)

func TestExistsDistinguishesMissingPaths(t *testing.T) {
	memoryFileSystem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memoryFileSystem, "/repo/modular/mojo/stdlib/a.mojo", []byte("X"), 0o644))

	fileSystem := filesystem.New(memoryFileSystem)

	exists, existsError := fileSystem.Exists("/repo/modular/mojo/stdlib")
	require.NoError(t, existsError)
	require.True(t, exists)

	exists, existsError = fileSystem.Exists("/repo/modular/mojo/docs")
	require.NoError(t, existsError)
	require.False(t, exists)
}

func TestIsDirectoryRejectsFilesAndMissingPaths(t *testing.T) {
	memoryFileSystem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memoryFileSystem, "/repo/modular/mojo/stdlib/a.mojo", []byte("X"), 0o644))
	require.NoError(t, afero.WriteFile(memoryFileSystem, "/repo/modular/mojo/docs", []byte("not a directory"), 0o644))

	fileSystem := filesystem.New(memoryFileSystem)

	testCases := []struct {
		name              string
		path              string
		expectedDirectory bool
	}{
		{name: "Directory", path: "/repo/modular/mojo/stdlib", expectedDirectory: true},
		{name: "RegularFile", path: "/repo/modular/mojo/docs", expectedDirectory: false},
		{name: "Missing", path: "/repo/modular/mojo/examples", expectedDirectory: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			isDirectory, inspectError := fileSystem.IsDirectory(testCase.path)
			require.NoError(t, inspectError)
			require.Equal(t, testCase.expectedDirectory, isDirectory)
		})
	}
}

func TestWalkVisitsEntriesInLexicalOrder(t *testing.T) {
	memoryFileSystem := afero.NewMemMapFs()
	for _, filePath := range []string{"/tree/b.txt", "/tree/a/z.txt", "/tree/a/y/x.txt", "/tree/c.txt"} {
		require.NoError(t, afero.WriteFile(memoryFileSystem, filePath, []byte(filePath), 0o644))
	}

	fileSystem := filesystem.New(memoryFileSystem)

	var visited []string
	walkError := fileSystem.Walk("/tree", func(path string, info fs.FileInfo) error {
		visited = append(visited, path)
		return nil
	})
	require.NoError(t, walkError)
	require.Equal(t, []string{
		"/tree",
		"/tree/a",
		"/tree/a/y",
		"/tree/a/y/x.txt",
		"/tree/a/z.txt",
		"/tree/b.txt",
		"/tree/c.txt",
	}, visited)
}

func TestWalkReportsMissingRoot(t *testing.T) {
	fileSystem := filesystem.New(afero.NewMemMapFs())
	walkError := fileSystem.Walk("/missing", func(string, fs.FileInfo) error { return nil })
	require.ErrorContains(t, walkError, "failed to walk /missing")
}

func TestWalkFollowsSymbolicLinksOnDisk(t *testing.T) {
	rootDirectory := t.TempDir()
	targetDirectory := filepath.Join(rootDirectory, "target")
	require.NoError(t, os.MkdirAll(targetDirectory, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(targetDirectory, "file.txt"), []byte("linked"), 0o644))

	treeDirectory := filepath.Join(rootDirectory, "tree")
	require.NoError(t, os.MkdirAll(treeDirectory, 0o755))
	if symlinkError := os.Symlink(targetDirectory, filepath.Join(treeDirectory, "linked")); symlinkError != nil {
		t.Skipf("symbolic links unavailable: %v", symlinkError)
	}

	fileSystem := filesystem.NewOSFileSystem()

	visitedFiles := map[string]bool{}
	walkError := fileSystem.Walk(treeDirectory, func(path string, info fs.FileInfo) error {
		relativePath, relativeError := filepath.Rel(treeDirectory, path)
		require.NoError(t, relativeError)
		visitedFiles[filepath.ToSlash(relativePath)] = info.IsDir()
		return nil
	})
	require.NoError(t, walkError)
	require.Equal(t, map[string]bool{".": true, "linked": true, "linked/file.txt": false}, visitedFiles)
}
