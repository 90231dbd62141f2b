package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e opcionalmente arquivo).
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	JWT  JWTConfig
	ERP  ERPConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuração do servidor HTTP local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuração de validação/emissão de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// ERPConfig configuração do backend REST do ERP (onde vivem os dados de estoque).
type ERPConfig struct {
	BaseURL        string // ex.: https://erp.exemplo.com.br
	Token          string // token de serviço enviado como Bearer
	TimeoutSeconds int
}

// Timeout devolve o timeout de requisição como duração.
func (c ERPConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo .env).
// As env vars têm prioridade. Nomes esperados: APP_ENV, HTTP_PORT, JWT_SECRET, ERP_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo de configuração (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "producao-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "producao-api"),
		},
		ERP: ERPConfig{
			BaseURL:        getString(v, "ERP_BASE_URL", "http://localhost:8000"),
			Token:          getString(v, "ERP_TOKEN", ""),
			TimeoutSeconds: getInt(v, "ERP_TIMEOUT_SECONDS", 30),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
