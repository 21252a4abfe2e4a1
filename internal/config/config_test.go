package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		apiAddress       string
		runAddress       string
		credentialsFile  string
		transportRetries int
		notificationTTL  time.Duration
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: want{
				apiAddress:      "http://localhost:5000/api",
				runAddress:      "localhost:5000",
				notificationTTL: 3 * time.Second,
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"API_ADDRESS":       "http://localhost:9999/api",
				"RUN_ADDRESS":       "localhost:9999",
				"CREDENTIALS_FILE":  "/tmp/creds.json",
				"TRANSPORT_RETRIES": "2",
				"NOTIFICATION_TTL":  "5s",
			},
			flags: []string{},
			want: want{
				apiAddress:       "http://localhost:9999/api",
				runAddress:       "localhost:9999",
				credentialsFile:  "/tmp/creds.json",
				transportRetries: 2,
				notificationTTL:  5 * time.Second,
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "http://localhost:7777/api",
				"-l", "localhost:7777",
				"-c", "/tmp/flag-creds.json",
				"-r", "1",
				"-n", "2s",
			},
			want: want{
				apiAddress:       "http://localhost:7777/api",
				runAddress:       "localhost:7777",
				credentialsFile:  "/tmp/flag-creds.json",
				transportRetries: 1,
				notificationTTL:  2 * time.Second,
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"API_ADDRESS": "http://env:9000/api",
				"RUN_ADDRESS": "env:9000",
			},
			flags: []string{
				"-a", "http://flag:8000/api",
				"-l", "flag:8000",
			},
			want: want{
				apiAddress:      "http://env:9000/api",
				runAddress:      "env:9000",
				notificationTTL: 3 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.apiAddress, cfg.APIAddress)
			assert.Equal(t, tt.want.runAddress, cfg.RunAddress)
			assert.Equal(t, tt.want.credentialsFile, cfg.CredentialsFile)
			assert.Equal(t, tt.want.transportRetries, cfg.TransportRetries)
			assert.Equal(t, tt.want.notificationTTL, cfg.NotificationTTL)
		})
	}
}
