package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solatis/quietrepr/internal/core/db"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestInspectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	input := "__type__: User\nid: 1\nname: Gemini\nbio: null\nemail: \"\"\n---\na: []\nb: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(input), 0o600))

	out := execute(t, "inspect", path, "--omit", "nil_value,empty_list")
	assert.Equal(t, "User{__type__: \"User\", id: 1, name: \"Gemini\", email: \"\"}\n{b: 0}\n", out)
}

func TestQueryCommand(t *testing.T) {
	dbURL := "sqlite://" + filepath.Join(t.TempDir(), "q.db")
	conn, err := db.Open(dbURL)
	require.NoError(t, err)
	conn.MustExec(`CREATE TABLE users (id INTEGER, name TEXT, bio TEXT, email TEXT)`)
	conn.MustExec(`INSERT INTO users VALUES (1, 'Gemini', NULL, '')`)
	require.NoError(t, conn.Close())

	out := execute(t, "query", "--db-url", dbURL, "--sql", "SELECT id, name, bio, email FROM users", "--type", "User")
	assert.Equal(t, "User{id: 1, name: \"Gemini\"}\n", out)
}

func TestCategoriesCommand(t *testing.T) {
	out := execute(t, "categories")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "nil_value"))
	assert.Contains(t, lines[0], "default=true")
	assert.Contains(t, lines[1], "default=false")
	assert.Contains(t, lines[10], "__type__")
}
