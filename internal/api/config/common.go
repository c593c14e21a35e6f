package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig Mongo配置
type MongoConfig struct {
	URL         string `mapstructure:"url"`
	Database    string `mapstructure:"database"`
	SlowQueryMS int    `mapstructure:"slow_query_ms"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 日志远程上报配置，Address 为空时只输出到 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
