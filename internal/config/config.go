package config

import (
	"fmt"
	"strings"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/auth"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/mq"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API         API          `mapstructure:"api"`
	Database    mysql.Config `mapstructure:"database"`
	Auth        auth.Config  `mapstructure:"auth"`
	RabbitMQ    mq.Config    `mapstructure:"rabbitmq"`
	Environment string       `mapstructure:"environment"`
}

type API struct {
	Port string `mapstructure:"port"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("NEQUI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Environment == "" {
		cfg.Environment = "production"
	}

	return cfg, nil
}
