package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
)

type Settings struct {
	DB        DBSettings        `mapstructure:"db"`
	Redis     RedisSettings     `mapstructure:"redis"`
	Kafka     KafkaSettings     `mapstructure:"kafka"`
	HTTP      HTTPSettings      `mapstructure:"http"`
	Log       LogSettings       `mapstructure:"log"`
	Storage   StorageSettings   `mapstructure:"storage"`
	Orders    OrderSettings     `mapstructure:"orders"`
	Delivery  DeliverySettings  `mapstructure:"delivery"`
	Cart      CartSettings      `mapstructure:"cart"`
	Analytics AnalyticsSettings `mapstructure:"analytics"`
	QR        QRSettings        `mapstructure:"qr"`
	Gateway   GatewaySettings   `mapstructure:"gateway"`
}

type DBSettings struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type KafkaSettings struct {
	Broker       string `mapstructure:"broker"`
	OrdersTopic  string `mapstructure:"orders_topic"`
	RatingsTopic string `mapstructure:"ratings_topic"`
	GroupID      string `mapstructure:"group_id"`
}

type HTTPSettings struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

// StorageSettings bounds every repository call: each attempt gets Timeout,
// and failures classified as unavailable are retried RetryAttempts times.
type StorageSettings struct {
	Driver        string        `mapstructure:"driver"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`
}

type OrderSettings struct {
	DeliveryETA int `mapstructure:"delivery_eta"`
	TakeawayETA int `mapstructure:"takeaway_eta"`
}

type DeliverySettings struct {
	BaseFee   float64            `mapstructure:"base_fee"`
	PerKm     float64            `mapstructure:"per_km"`
	Distances map[string]float64 `mapstructure:"distances"`
}

type CartSettings struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type AnalyticsSettings struct {
	Timezone string `mapstructure:"timezone"`
}

type QRSettings struct {
	BaseURL string `mapstructure:"base_url"`
}

type GatewaySettings struct {
	CatalogURL   string `mapstructure:"catalog_url"`
	OrderURL     string `mapstructure:"order_url"`
	RateURL      string `mapstructure:"rate_url"`
	AnalyticsURL string `mapstructure:"analytics_url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "restaurant")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")

	v.SetDefault("kafka.broker", "localhost:9092")
	v.SetDefault("kafka.orders_topic", "orders")
	v.SetDefault("kafka.ratings_topic", "ratings")
	v.SetDefault("kafka.group_id", "agg-svc-consumer")

	v.SetDefault("http.port", 0)
	v.SetDefault("http.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")

	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("storage.timeout", 3*time.Second)
	v.SetDefault("storage.retry_attempts", 3)
	v.SetDefault("storage.retry_backoff", 100*time.Millisecond)

	v.SetDefault("orders.delivery_eta", 45)
	v.SetDefault("orders.takeaway_eta", 25)

	v.SetDefault("delivery.base_fee", 5.0)
	v.SetDefault("delivery.per_km", 1.5)
	v.SetDefault("delivery.distances", map[string]float64{})

	v.SetDefault("cart.ttl", 24*time.Hour)

	v.SetDefault("analytics.timezone", "Local")

	v.SetDefault("qr.base_url", "http://localhost:8080")

	v.SetDefault("gateway.catalog_url", "http://localhost:8081")
	v.SetDefault("gateway.order_url", "http://localhost:8084")
	v.SetDefault("gateway.rate_url", "http://localhost:8082")
	v.SetDefault("gateway.analytics_url", "http://localhost:8083")
}

// Load resolves settings from (lowest to highest precedence) defaults, an
// optional YAML file, a .env file and the process environment. Nested keys map
// to upper-case env names, so db.host is read from DB_HOST.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("gateway.catalog_url", "CATALOG_SVC_URL")
	_ = v.BindEnv("gateway.order_url", "ORDER_SVC_URL")
	_ = v.BindEnv("gateway.rate_url", "RATE_SVC_URL")
	_ = v.BindEnv("gateway.analytics_url", "ANALYTICS_SVC_URL")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var settings Settings
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&settings, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &settings, nil
}

// MustLoad is Load for main packages.
func MustLoad() *Settings {
	settings, err := Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	return settings
}

// HTTPAddr returns the listen address, falling back to the service default
// port when http.port is unset.
func (s *Settings) HTTPAddr(defaultPort int) string {
	port := s.HTTP.Port
	if port == 0 {
		port = defaultPort
	}
	return fmt.Sprintf(":%d", port)
}

// DSN builds the connection string for the configured driver.
func (d DBSettings) DSN() string {
	if d.Driver == "pgx" {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			d.User, d.Password, d.Host, d.Port, d.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

func MustInitPostgres(settings DBSettings) *sql.DB {
	db, err := sql.Open(settings.Driver, settings.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(settings.MaxOpenConns)
	db.SetMaxIdleConns(settings.MaxIdleConns)
	db.SetConnMaxLifetime(settings.ConnMaxLifetime)

	return db
}

func MustInitRedis(settings RedisSettings) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: settings.Host + ":" + settings.Port,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(settings KafkaSettings, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{settings.Broker},
		Topic:   topic,
		GroupID: settings.GroupID,
	})
}

func NewKafkaWriter(settings KafkaSettings, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(settings.Broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
