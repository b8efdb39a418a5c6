package resolver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{"child file", "/proj", "/proj/src/Button.jsx", "src/Button.jsx"},
		{"nested", "/proj", "/proj/src/components/nav/Nav.js", "src/components/nav/Nav.js"},
		{"sibling directory", "/proj/app", "/proj/lib/util.js", "../lib/util.js"},
		{"backslashes", `/proj`, `/proj\src\store\actions.js`, "src/store/actions.js"},
		{"trailing slash on base", "/proj/", "/proj/server.js", "server.js"},
		{"relative target", "/proj", "src/hooks/useCounter.js", "src/hooks/useCounter.js"},
		{"missing file still resolves", "/proj", "/proj/does/not/exist.js", "does/not/exist.js"},
		{"drive letter", `C:\proj`, `C:\proj\src\App.js`, "src/App.js"},
		{"drive letter case differs", `c:\proj`, `C:\proj\src\App.js`, "src/App.js"},
		{"drive letter sibling", `C:\proj\app`, `C:\proj\lib\util.js`, "../lib/util.js"},
		{"drive letter relative target", `C:\proj`, `src\hooks\useCounter.js`, "src/hooks/useCounter.js"},
		{"drive letter forward slashes", "C:/proj/", "C:/proj/server.js", "server.js"},
		{"unc share", `\\fs\share\proj`, `\\fs\share\proj\src\App.js`, "src/App.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.base, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, `\`)
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	base := "/proj"
	targets := []string{
		"/proj/src/Button.jsx",
		"/other/place/file.js",
		`/proj\src\reducers\index.js`,
	}

	for _, target := range targets {
		first, err := Resolve(base, target)
		require.NoError(t, err)

		again, err := Resolve(base, filepath.Join(base, filepath.FromSlash(first)))
		require.NoError(t, err)

		assert.Equal(t, first, again, "target %s", target)
	}
}

func TestResolve_DifferentVolumes(t *testing.T) {
	tests := []struct {
		base   string
		target string
	}{
		{`C:\proj`, `D:\proj\src\App.js`},
		{"/proj", `C:\proj\src\App.js`},
		{`\\fs\share\proj`, `\\fs\other\proj\App.js`},
	}

	for _, tt := range tests {
		if _, err := Resolve(tt.base, tt.target); err == nil {
			t.Errorf("Resolve(%s, %s) succeeded, want error", tt.base, tt.target)
		}
	}
}

func TestImport_DriveLetter(t *testing.T) {
	got, err := Import(`C:\proj`, `C:\proj\src\App.js`)
	require.NoError(t, err)
	assert.Equal(t, "../src/App.js", got)
}

func TestImport(t *testing.T) {
	got, err := Import("/proj", "/proj/src/App.jsx")
	require.NoError(t, err)
	assert.Equal(t, "../src/App.jsx", got)
}
