package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/hubctl/internal/validation"
)

func writePasswordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "password.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestReadPassword проверяет источники пароля и их приоритет
func TestReadPassword(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		file    string // содержимое файла, пусто - без файла
		args    string
		stdin   string
		want    string
		wantErr string
	}{
		{name: "from env", env: "env_password", want: "env_password"},
		{name: "from file", file: "file_password\n", want: "file_password"},
		{name: "file with whitespace", file: "  spaced_password  \n\n", want: "spaced_password"},
		{name: "from args", args: "cli_password", want: "cli_password"},
		{name: "env over file and args", env: "env_password", file: "file_password", args: "cli_password", want: "env_password"},
		{name: "file over args", file: "file_password", args: "cli_password", want: "file_password"},
		{name: "interactive", stdin: "typed_password\n", want: "typed_password"},
		{name: "empty file", file: "   \n", wantErr: "password file is empty"},
		{name: "empty input", stdin: "\n", wantErr: "password cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvPassword, tt.env)
			src := passwordSource{FromArgs: tt.args}
			if tt.file != "" {
				src.FromFile = writePasswordFile(t, tt.file)
			}
			var out bytes.Buffer
			c := New(strings.NewReader(tt.stdin), &out, &out, BuildInfo{})

			password, err := c.readPassword(src, "Password: ")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, password)
		})
	}
}

func TestReadPassword_FileNotFound(t *testing.T) {
	t.Setenv(EnvPassword, "")
	c := New(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, BuildInfo{})

	_, err := c.readPassword(passwordSource{FromFile: filepath.Join(t.TempDir(), "missing.txt")}, "Password: ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read password file")
}

func TestReadNewPassword(t *testing.T) {
	t.Run("interactive with confirmation", func(t *testing.T) {
		t.Setenv(EnvPassword, "")
		var out bytes.Buffer
		c := New(strings.NewReader("Str0ng!pass\nStr0ng!pass\n"), &out, &out, BuildInfo{})

		password, err := c.readNewPassword(passwordSource{})

		require.NoError(t, err)
		assert.Equal(t, "Str0ng!pass", password)
		assert.Contains(t, out.String(), "Password strength:")
	})

	t.Run("mismatch", func(t *testing.T) {
		t.Setenv(EnvPassword, "")
		c := New(strings.NewReader("secret12\nsecret13\n"), &bytes.Buffer{}, &bytes.Buffer{}, BuildInfo{})

		_, err := c.readNewPassword(passwordSource{})

		assert.ErrorIs(t, err, validation.ErrValidation)
	})

	t.Run("flag is not confirmed", func(t *testing.T) {
		t.Setenv(EnvPassword, "")
		var out bytes.Buffer
		c := New(strings.NewReader(""), &out, &out, BuildInfo{})

		password, err := c.readNewPassword(passwordSource{FromArgs: "secret12"})

		require.NoError(t, err)
		assert.Equal(t, "secret12", password)
		assert.NotContains(t, out.String(), "Password strength:")
	})

	t.Run("too short", func(t *testing.T) {
		t.Setenv(EnvPassword, "")
		c := New(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, BuildInfo{})

		_, err := c.readNewPassword(passwordSource{FromArgs: "123"})

		assert.ErrorIs(t, err, validation.ErrValidation)
	})
}
