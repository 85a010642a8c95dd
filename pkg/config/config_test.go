package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TestEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "test-admin-key", cfg.AdminKey)
	assert.Equal(t, "test-root-folder", cfg.RootFolderID)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 50, cfg.MaxUploadFiles)
	assert.Equal(t, 5, cfg.WalkMaxDepth)
	assert.Equal(t, 4, cfg.WalkFanout)
}

func TestNew_ProductionRequiresAdminKey(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ADMIN_KEY", "")
	t.Setenv("ROOT_FOLDER_ID", "root")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "creds.json")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_KEY")
}

func TestNew_ProductionReadsPort(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ADMIN_KEY", "k")
	t.Setenv("ROOT_FOLDER_ID", "root")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "creds.json")
	t.Setenv("PORT", "8080")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
}
