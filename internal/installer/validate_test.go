package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWordPressRoot(t *testing.T) {
	wp := newWordPress(t)

	got, err := ValidateWordPressRoot(wp, "wp-config.php")
	require.NoError(t, err)
	assert.Equal(t, wp, got)

	// Surrounding whitespace from a pasted path is ignored.
	got, err = ValidateWordPressRoot("  "+wp+"  ", "wp-config.php")
	require.NoError(t, err)
	assert.Equal(t, wp, got)
}

func TestValidateWordPressRootRejects(t *testing.T) {
	empty := t.TempDir()

	withDirMarker := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(withDirMarker, "wp-config.php"), 0o755))

	file := filepath.Join(t.TempDir(), "wp-config.php")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	cases := []struct {
		name string
		dir  string
		want error
	}{
		{"empty input", "   ", ErrPathRequired},
		{"missing folder", filepath.Join(empty, "nope"), ErrNotDirectory},
		{"file instead of folder", file, ErrNotDirectory},
		{"no marker", empty, ErrMarkerMissing},
		{"marker is a directory", withDirMarker, ErrMarkerMissing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateWordPressRoot(tc.dir, "wp-config.php")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateWordPressRootKeepsStatError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := ValidateWordPressRoot(missing, "wp-config.php")
	assert.ErrorIs(t, err, ErrNotDirectory)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, missing)
}

func TestValidateTargetDir(t *testing.T) {
	dir := t.TempDir()

	got, err := ValidateTargetDir(filepath.Join(dir, "gallery"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gallery"), got)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = ValidateTargetDir(file)
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = ValidateTargetDir("")
	assert.ErrorIs(t, err, ErrPathRequired)
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"https://myfamilyphotos.com":          "https://myfamilyphotos.com",
		"  https://www.mysite.com/wordpress/ ": "https://www.mysite.com/wordpress",
		"http://localhost/wordpress//":        "http://localhost/wordpress",
	}
	for in, want := range cases {
		got, err := NormalizeURL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "   ", "https://"} {
		_, err := NormalizeURL(in)
		assert.ErrorIs(t, err, ErrURLRequired, in)
	}
	for _, in := range []string{"myfamilyphotos.com", "ftp://example.com", "https:///path"} {
		_, err := NormalizeURL(in)
		assert.ErrorIs(t, err, ErrInvalidURL, in)
	}
}

func TestValidateCredentials(t *testing.T) {
	id, secret, err := ValidateCredentials(" 123-abc.apps.googleusercontent.com ", "GOCSPX-x\n")
	require.NoError(t, err)
	assert.Equal(t, "123-abc.apps.googleusercontent.com", id)
	assert.Equal(t, "GOCSPX-x", secret)

	_, _, err = ValidateCredentials("id", " ")
	assert.ErrorIs(t, err, ErrCredentialsRequired)
	_, _, err = ValidateCredentials("", "secret")
	assert.ErrorIs(t, err, ErrCredentialsRequired)
}
