package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// SchedulingConfig carries the working-hours window and the overdue
// heuristic thresholds. The overdue numbers deliberately stay plain
// configuration values rather than references to a named priority tier.
type SchedulingConfig struct {
	WorkdayStartHour     int     `yaml:"workday_start_hour"`
	WorkdayEndHour       int     `yaml:"workday_end_hour"`
	WorkingHoursPerDay   float64 `yaml:"working_hours_per_day"`
	OverduePriorityFloor int     `yaml:"overdue_priority_floor"`
	OverdueHorizonHours  float64 `yaml:"overdue_horizon_hours"`
	ReferenceCacheTTL    int     `yaml:"reference_cache_ttl_seconds"`
}

type Config struct {
	DB         DBConfig         `yaml:"db"`
	MQ         MQConfig         `yaml:"mq"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Server     ServerConfig     `yaml:"server"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
}

func Load() *Config {
	f, err := os.Open("config.yaml")
	if err != nil {
		log.Fatalf("failed to open config.yaml: %v", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config.yaml: %v", err)
	}

	overrideFromEnv(&cfg)
	applySchedulingDefaults(&cfg.Scheduling)

	return &cfg
}

func overrideFromEnv(cfg *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
}

func applySchedulingDefaults(s *SchedulingConfig) {
	if s.WorkdayStartHour == 0 {
		s.WorkdayStartHour = 10
	}
	if s.WorkdayEndHour == 0 {
		s.WorkdayEndHour = 18
	}
	if s.WorkingHoursPerDay == 0 {
		s.WorkingHoursPerDay = 8
	}
	if s.OverduePriorityFloor == 0 {
		s.OverduePriorityFloor = 4
	}
	if s.OverdueHorizonHours == 0 {
		s.OverdueHorizonHours = 48
	}
	if s.ReferenceCacheTTL == 0 {
		s.ReferenceCacheTTL = 600
	}
}

// CacheTTL returns the reference-cache TTL as a duration.
func (s SchedulingConfig) CacheTTL() time.Duration {
	return time.Duration(s.ReferenceCacheTTL) * time.Second
}
