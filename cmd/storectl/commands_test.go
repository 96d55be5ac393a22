package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(func() (*config.Config, error) { return cfg, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testutil.Config()
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "shop.db")
	return cfg
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, testutil.Config(), "hash-password", "--cost", "4", "hunter22")
	require.NoError(t, err)

	digest := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(digest), []byte("hunter22")))

	_, err = run(t, testutil.Config(), "hash-password", "abc")
	assert.Error(t, err)
}

func TestMigrateSeedAndCreateAdmin(t *testing.T) {
	cfg := sqliteConfig(t)

	out, err := run(t, cfg, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	out, err = run(t, cfg, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "14 products")

	out, err = run(t, cfg, "create-admin", "--email", "root@example.com", "--password", "admin-pass")
	require.NoError(t, err)
	assert.Contains(t, out, "admin root@example.com")
}

func TestOrderStatusUnknownOrder(t *testing.T) {
	cfg := sqliteConfig(t)
	_, err := run(t, cfg, "migrate")
	require.NoError(t, err)

	_, err = run(t, cfg, "order-status", "7", "Processing")
	assert.ErrorContains(t, err, "order not found")

	_, err = run(t, cfg, "order-status", "x", "Processing")
	assert.Error(t, err)
}

func TestSendTestEmailWithLogProvider(t *testing.T) {
	out, err := run(t, testutil.Config(), "send-test-email", "ops@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "via log")
}
