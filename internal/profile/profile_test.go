package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kcjoin/internal/invoker"
)

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeProfile(t, t.TempDir(), "corp.hcl", `
domain = "corp.example.com"
ou     = "OU=Workstations,DC=corp,DC=example,DC=com"
user   = "CORP\\svc-join"
`)

	// --- Act ---
	p, err := Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "corp.example.com", p.Domain)
	assert.Equal(t, "OU=Workstations,DC=corp,DC=example,DC=com", p.OU)
	assert.Equal(t, `CORP\svc-join`, p.User)
	assert.Empty(t, p.Password)
	assert.False(t, p.Unjoin)
	assert.Equal(t, []string{path}, p.Files)
}

func TestLoad_DirectoryMergesInOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "10-base.hcl", `
domain = "corp.example.com"
ou     = "OU=Base,DC=corp,DC=example,DC=com"
user   = "base-user"
`)
	writeProfile(t, dir, "20-site.hcl", `
ou     = "OU=Site,DC=corp,DC=example,DC=com"
unjoin = true
`)

	p, err := Load(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, "corp.example.com", p.Domain, "attributes absent from later files are kept")
	assert.Equal(t, "OU=Site,DC=corp,DC=example,DC=com", p.OU)
	assert.Equal(t, "base-user", p.User)
	assert.True(t, p.Unjoin)
	assert.Len(t, p.Files, 2)
}

func TestLoad_EnvFunction(t *testing.T) {
	t.Setenv("KCJOIN_TEST_PASSWORD", "from-env")

	path := writeProfile(t, t.TempDir(), "secret.hcl", `password = env("KCJOIN_TEST_PASSWORD")`)

	p, err := Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", p.Password)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	t.Parallel()

	p, err := Load(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, &Profile{}, p)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		content string
		want    string
	}{
		"syntax error":        {content: `domain = "corp`, want: "failed to parse profile"},
		"unknown attribute":   {content: `site = "hq"`, want: "failed to decode profile"},
		"wrong type":          {content: `unjoin = "maybe"`, want: "failed to decode profile"},
		"unknown function":    {content: `user = lookup("x")`, want: "failed to decode profile"},
		"undefined variables": {content: `user = var.name`, want: "failed to decode profile"},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeProfile(t, t.TempDir(), "bad.hcl", tc.content)

			_, err := Load(context.Background(), path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to locate profile")
}

func TestApply_CommandLineWins(t *testing.T) {
	t.Parallel()

	p := &Profile{
		Host:     "profile-host",
		User:     "profile-user",
		Password: "profile-pass",
		OU:       "OU=Profile",
		Domain:   "profile.example.com",
	}
	req := invoker.Request{User: "cli-user", Domain: "cli.example.com"}

	p.Apply(&req)

	assert.Equal(t, invoker.Request{
		Host:     "profile-host",
		User:     "cli-user",
		Password: "profile-pass",
		OU:       "OU=Profile",
		Domain:   "cli.example.com",
	}, req)
}

func TestApply_UnjoinOnlyEnables(t *testing.T) {
	t.Parallel()

	req := invoker.Request{Unjoin: true}
	(&Profile{Unjoin: false}).Apply(&req)
	assert.True(t, req.Unjoin)

	req = invoker.Request{}
	(&Profile{Unjoin: true}).Apply(&req)
	assert.True(t, req.Unjoin)
}
