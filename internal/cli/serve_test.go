package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evcraddock/wander/internal/config"
)

func TestStartupMessage(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"port flag", config.Config{Port: 9000, BaseURL: "http://localhost:8080"},
			"Starting web UI on http://localhost:9000 (public URL http://localhost:8080)"},
		{"matching base url", config.Config{Port: 8080, BaseURL: "http://localhost:8080/"},
			"Starting web UI on http://localhost:8080"},
		{"no base url", config.Config{Port: 9000}, "Starting web UI on http://localhost:9000"},
		{"public host", config.Config{Port: 8080, BaseURL: "https://trips.example.com"},
			"Starting web UI on http://localhost:8080 (public URL https://trips.example.com)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, startupMessage(&tt.cfg))
		})
	}
}
