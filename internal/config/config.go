package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
	Secret     string `mapstructure:"secret"`
	AdminKey   string `mapstructure:"admin_key"`

	DataDir       string `mapstructure:"data_dir"`
	AdvocatesFile string `mapstructure:"advocates_file"`

	ChatLogCap        int           `mapstructure:"chat_log_cap"`
	SignalLogCap      int           `mapstructure:"signal_log_cap"`
	MaxRooms          int           `mapstructure:"max_rooms"`
	PresenceThreshold time.Duration `mapstructure:"presence_threshold"`
	PersistTimeout    time.Duration `mapstructure:"persist_timeout"`
	RoomTTL           time.Duration `mapstructure:"room_ttl"`
	SweepInterval     time.Duration `mapstructure:"sweep_interval"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 5000)
	v.SetDefault("static_path", "./static")
	v.SetDefault("secret", "advocate-chat-secret")
	v.SetDefault("admin_key", "")
	v.SetDefault("data_dir", "./data/db")
	v.SetDefault("advocates_file", "./data/advocates.json")
	v.SetDefault("chat_log_cap", 100)
	v.SetDefault("signal_log_cap", 20)
	v.SetDefault("max_rooms", 0)
	v.SetDefault("presence_threshold", "30s")
	v.SetDefault("persist_timeout", "3s")
	v.SetDefault("room_ttl", "0")
	v.SetDefault("sweep_interval", "1m")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("config file not found (%s), using defaults\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
