package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()

	if GetInt("server.port") != 8080 {
		t.Errorf("Expected default server.port to be 8080, got %d", GetInt("server.port"))
	}
	if GetString("backend.url") != "http://localhost:8000" {
		t.Errorf("Expected default backend.url to be http://localhost:8000, got %s", GetString("backend.url"))
	}
	if GetString("drafts.storage_key") != "lx-annotate-drafts" {
		t.Errorf("Expected default drafts.storage_key to be lx-annotate-drafts, got %s", GetString("drafts.storage_key"))
	}
	if GetDuration("stats.stale_after") != 5*time.Minute {
		t.Errorf("Expected default stats.stale_after to be 5m, got %s", GetDuration("stats.stale_after"))
	}
}

func TestEnvironmentOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	defer os.Unsetenv("LXANNOTATE_SERVER_PORT")

	os.Setenv("LXANNOTATE_SERVER_PORT", "9090")

	setDefaults()
	viper.SetEnvPrefix("LXANNOTATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if GetInt("server.port") != 9090 {
		t.Errorf("Expected server.port to be overridden to 9090, got %d", GetInt("server.port"))
	}
}

func TestValidateAutoCorrect(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()
	viper.Set("backend.requests_per_second", -1)
	viper.Set("backend.burst_size", 0)

	if err := validate(); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if GetInt("backend.requests_per_second") != 20 {
		t.Errorf("Expected requests_per_second to be corrected to 20, got %d", GetInt("backend.requests_per_second"))
	}
	if GetInt("backend.burst_size") != 5 {
		t.Errorf("Expected burst_size to be corrected to 5, got %d", GetInt("backend.burst_size"))
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 8080,
				},
				Backend: BackendConfig{
					URL: "http://localhost:8000",
				},
			},
			wantErr: false,
		},
		{
			name: "invalid port",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 0,
				},
				Backend: BackendConfig{
					URL: "http://localhost:8000",
				},
			},
			wantErr: true,
		},
		{
			name: "backend url without scheme",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 8080,
				},
				Backend: BackendConfig{
					URL: "localhost:8000",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
