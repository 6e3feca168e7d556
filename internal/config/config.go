package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API     *APIConfig     `mapstructure:"api"`
	Gin     *GinConfig     `mapstructure:"gin"`
	Neo4j   *Neo4jConfig   `mapstructure:"neo4j"`
	Auth    *AuthConfig    `mapstructure:"auth"`
	Chain   *ChainConfig   `mapstructure:"chain"`
	Storage *StorageConfig `mapstructure:"storage"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type AuthConfig struct {
	// JWKSEndpoints are tried in order when verifying the wallet
	// provider's JWT.
	JWKSEndpoints     []string `mapstructure:"jwks_endpoints"`
	SessionSigningKey string   `mapstructure:"session_signing_key"`
	SessionTTLMinutes int      `mapstructure:"session_ttl_minutes"`
	QRSigningKey      string   `mapstructure:"qr_signing_key"`
}

type ChainConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	WSSEndpoint       string `mapstructure:"wss_endpoint"`
	ContractAddress   string `mapstructure:"contract_address"`
	WebhookSigningKey string `mapstructure:"webhook_signing_key"`
	StartBlock        uint64 `mapstructure:"start_block"`
}

type StorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)

	viper.SetEnvPrefix("HUDDLEUP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	var conf AppConfig
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))

		if err := viper.Unmarshal(&conf); err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))
		}
	})
	viper.WatchConfig()

	return &conf, nil
}
