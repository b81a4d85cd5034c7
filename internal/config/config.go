package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Legacy       Legacy       `mapstructure:",squash"`
	Rates        Rates        `mapstructure:",squash"`
	Reporting    Reporting    `mapstructure:",squash"`
	ReportWarmup ReportWarmup `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	SecretKey    string       `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Database aponta para a loja atual (Postgres), que também guarda o
// diretório de funcionários e departamentos
type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Legacy aponta para a API HTTP do sistema legado
type Legacy struct {
	URL          string        `mapstructure:"legacy_url"`
	AccessToken  string        `mapstructure:"legacy_access_token"`
	FetchTimeout time.Duration `mapstructure:"legacy_fetch_timeout"`
}

// Rates configura a tabela de taxas de câmbio carregada de arquivo
type Rates struct {
	Path              string `mapstructure:"rates_path"`
	ReportingCurrency string `mapstructure:"rates_reporting_currency"`
}

// Reporting controla a fachada de relatórios
type Reporting struct {
	FetchTimeout         time.Duration `mapstructure:"reporting_fetch_timeout"`
	MaxConcurrentFetches int           `mapstructure:"reporting_max_concurrent_fetches"`
	CacheTTL             time.Duration `mapstructure:"reporting_cache_ttl"`
}

// ReportWarmup controla o aquecimento periódico do cache de relatórios
type ReportWarmup struct {
	CronSchedule string `mapstructure:"report_warmup_cron"`
	Enabled      bool   `mapstructure:"report_warmup_enabled"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("LEGACY_URL", "https://legado.example.com/api/v1")
	viper.SetDefault("LEGACY_ACCESS_TOKEN", "your_access_token")
	viper.SetDefault("LEGACY_FETCH_TIMEOUT", "15s")

	viper.SetDefault("RATES_PATH", "rates.yaml")
	viper.SetDefault("RATES_REPORTING_CURRENCY", "BRL")

	viper.SetDefault("REPORTING_FETCH_TIMEOUT", "15s")
	viper.SetDefault("REPORTING_MAX_CONCURRENT_FETCHES", 8)
	viper.SetDefault("REPORTING_CACHE_TTL", "5m")

	// Defaults para o aquecimento do cache de relatórios
	viper.SetDefault("REPORT_WARMUP_CRON", "*/15 6-22 * * *") // A cada 15 minutos no horário comercial
	viper.SetDefault("REPORT_WARMUP_ENABLED", false)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
