package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		check   func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "empty manifest name defaults to Memora.yml",
			modify: func(c *Config) {
				c.Manifest.Name = ""
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultManifestName, c.Manifest.Name)
			},
		},
		{
			name: "manifest path expands home",
			modify: func(c *Config) {
				c.Manifest.Path = "~/project/Memora.yml"
			},
			check: func(t *testing.T, c *Config) {
				home, err := os.UserHomeDir()
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(home, "project", "Memora.yml"), c.Manifest.Path)
			},
		},
		{
			name: "empty logging defaults",
			modify: func(c *Config) {
				c.Logging = LoggingConfig{}
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultLogLevel, c.Logging.Level)
				assert.Equal(t, DefaultLogFormat, c.Logging.Format)
			},
		},
		{
			name: "json format accepted",
			modify: func(c *Config) {
				c.Logging.Format = "json"
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "json", c.Logging.Format)
			},
		},
		{
			name: "unknown format rejected",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultManifestName, cfg.Manifest.Name)
	assert.Empty(t, cfg.Manifest.Path)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
}

func TestConfigDir(t *testing.T) {
	assert.Equal(t, ".memora", filepath.Base(ConfigDir()))
	assert.Equal(t, filepath.Join(ConfigDir(), "config.yaml"), ConfigFilePath())
}

// TestLoad_LoadWithMissingConfig tests loading with no config file
func TestLoad_LoadWithMissingConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, DefaultManifestName, cfg.Manifest.Name)
	assert.Empty(t, cfg.Manifest.Path)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
}

// TestLoad_WithInvalidConfigFile tests loading with invalid config file
func TestLoad_WithInvalidConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("invalid: yaml: content: ["), 0644)
	require.NoError(t, err)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(tmpDir)

	cfg, err := LoadFrom(viper.New())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoad_WithValidConfigFile tests loading with valid config file
func TestLoad_WithValidConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
manifest:
  name: cache.yml

logging:
  level: "debug"
  format: json
`
	err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(tmpDir)

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "cache.yml", cfg.Manifest.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

// TestLoadWithEnvironmentVariable tests loading with environment variable
func TestLoadWithEnvironmentVariable(t *testing.T) {
	t.Setenv("MEMORA_MANIFEST_PATH", "/srv/repo/Memora.yml")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/srv/repo/Memora.yml", cfg.Manifest.Path)
}

// TestLoad_InvalidFormatFromEnv tests that validation runs on loaded values
func TestLoad_InvalidFormatFromEnv(t *testing.T) {
	t.Setenv("MEMORA_LOGGING_FORMAT", "xml")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadFrom(viper.New())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoadFrom_ExplicitConfigFile tests that a file set on the viper instance
// wins over the search paths
func TestLoadFrom_ExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("manifest:\n  name: ignored.yml\n"), 0644))
	explicit := filepath.Join(t.TempDir(), "memora.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("manifest:\n  name: ci.yml\n"), 0644))
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)

	v := viper.New()
	v.SetConfigFile(explicit)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "ci.yml", cfg.Manifest.Name)
}

// TestLoad_GlobalViper tests Load against the global viper instance
func TestLoad_GlobalViper(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Manifest.Name)
}
