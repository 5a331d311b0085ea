package config

import "time"

// Config representa a estrutura raiz da configuração do cliente Légifrance.
//
// A ordem de carga é: defaults (tag envDefault), arquivo YAML opcional e,
// por fim, variáveis de ambiente.
type Config struct {
	API         APIConfig       `yaml:"api"`
	Logging     LoggingConf     `yaml:"logging"`
	Metrics     MetricsConf     `yaml:"metrics"`
	Cache       CacheConf       `yaml:"cache"`
	Credentials CredentialsConf `yaml:"credentials"`
	Search      SearchConf      `yaml:"search"`
}

// APIConfig contém credenciais, endpoints e timeouts do cliente HTTP.
type APIConfig struct {
	ClientID       string        `yaml:"client_id" env:"LEGIFRANCE_CLIENT_ID" validate:"required"`
	ClientSecret   string        `yaml:"client_secret" env:"LEGIFRANCE_CLIENT_SECRET" validate:"required"`
	TokenURL       string        `yaml:"token_url" env:"LEGIFRANCE_TOKEN_URL" envDefault:"https://oauth.piste.gouv.fr/api/oauth/token" validate:"required,url"`
	APIURL         string        `yaml:"api_url" env:"LEGIFRANCE_API_URL" envDefault:"https://api.piste.gouv.fr/dila/legifrance/lf-engine-app/" validate:"required,url"`
	Scope          string        `yaml:"scope" env:"LEGIFRANCE_SCOPE" envDefault:"openid"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"LEGIFRANCE_CONNECT_TIMEOUT" envDefault:"3050ms" validate:"gt=0"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"LEGIFRANCE_READ_TIMEOUT" envDefault:"27s" validate:"gt=0"`
	PingRoute      string        `yaml:"ping_route" env:"LEGIFRANCE_PING_ROUTE" envDefault:"consult/ping"`
	TokenRetry     RetryConf     `yaml:"token_retry"`
}

// RetryConf define a política fixa de tentativas da obtenção de token.
type RetryConf struct {
	MaxAttempts int           `yaml:"max_attempts" env:"LEGIFRANCE_TOKEN_ATTEMPTS" envDefault:"3" validate:"gte=1"`
	Delay       time.Duration `yaml:"delay" env:"LEGIFRANCE_TOKEN_RETRY_DELAY" envDefault:"5s" validate:"gte=0"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"LOG_ENABLED"`
	Level   string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"legifrance."`
}

// CacheConf controla o cache opcional de respostas das rotas de consulta.
type CacheConf struct {
	Backend  string        `yaml:"backend" env:"LEGIFRANCE_CACHE_BACKEND" envDefault:"none" validate:"oneof=none memory redis"`
	TTL      time.Duration `yaml:"ttl" env:"LEGIFRANCE_CACHE_TTL" envDefault:"1h" validate:"gte=0"`
	Routes   []string      `yaml:"routes" env:"LEGIFRANCE_CACHE_ROUTES" envDefault:"consult/"`
	RedisURL string        `yaml:"redis_addr" env:"LEGIFRANCE_REDIS_ADDR" validate:"required_if=Backend redis"`
}

// CredentialsConf indica de onde recarregar as credenciais quando
// UpdateAPIKeys é chamado sem valores.
type CredentialsConf struct {
	Source        string `yaml:"source" env:"LEGIFRANCE_CREDENTIALS_SOURCE" envDefault:"env" validate:"oneof=env aws-secretsmanager aws-ssm"`
	Region        string `yaml:"region" env:"AWS_REGION"`
	SecretID      string `yaml:"secret_id" env:"LEGIFRANCE_SECRET_ID" validate:"required_if=Source aws-secretsmanager"`
	ClientIDParam string `yaml:"client_id_param" env:"LEGIFRANCE_CLIENT_ID_PARAM" validate:"required_if=Source aws-ssm"`
	SecretParam   string `yaml:"client_secret_param" env:"LEGIFRANCE_CLIENT_SECRET_PARAM" validate:"required_if=Source aws-ssm"`
}

// SearchConf ajusta a montagem dos pipelines de busca.
type SearchConf struct {
	Concurrency int    `yaml:"concurrency" env:"LEGIFRANCE_CONCURRENCY" envDefault:"1" validate:"gte=1,lte=16"`
	PageSize    int    `yaml:"page_size" env:"LEGIFRANCE_PAGE_SIZE" envDefault:"10" validate:"gte=1,lte=100"`
	Filter      string `yaml:"filter" env:"LEGIFRANCE_FILTER"`
}
