package cmd

import (
	"errors"
	"strings"

	"github.com/smarthire/smarthire-cli/internal/logger"
	"github.com/smarthire/smarthire-cli/internal/scorectx"
	"github.com/smarthire/smarthire-cli/internal/secrets"
	"github.com/smarthire/smarthire-cli/internal/smarthire"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// runtime bundles what every command needs: config, logger, the backend
// client and the scoring context store.
type runtime struct {
	logger *zap.Logger
	config *Config
	client *smarthire.Client
	store  *scorectx.Store
}

func newRuntime() (*runtime, error) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, err
	}

	config, err := getConfig()
	if err != nil {
		return nil, err
	}

	session, err := resolveSession(config)
	if err != nil {
		return nil, err
	}

	client := smarthire.New(zlog, session)
	if config.APIURL != "" {
		client.APIURL = config.APIURL
	}
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	store, err := scorectx.New(config.ContextDir, client, zlog)
	if err != nil {
		return nil, err
	}

	return &runtime{
		logger: zlog,
		config: config,
		client: client,
		store:  store,
	}, nil
}

func resolveSession(config *Config) (string, error) {
	sessionFile := strings.TrimSpace(config.SessionFile)
	if sessionFile == "" {
		sessionFile = strings.TrimSpace(viper.GetString("session-file"))
	}

	if sessionFile == "" {
		return "", errors.New("smarthire session file is not configured (set SMARTHIRE_SESSION_FILE or the 'session-file' key)")
	}

	return secrets.Load(secrets.Source{
		Name: "smarthire session token",
		File: sessionFile,
	})
}
