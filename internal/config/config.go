package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	Mail   MailConfig   `mapstructure:"mail"   validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Task   TaskConfig   `mapstructure:"task"   validate:"required"`
	Admin  AdminConfig  `mapstructure:"admin"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	StaticDir string `mapstructure:"static_dir" validate:"required"`
}

// StoreConfig selects and configures the lead record store backend.
// The CSV backend appends to a local file; the postgres backend needs a
// connection URL and runs its migration at startup.
type StoreConfig struct {
	Driver      string `mapstructure:"driver"       validate:"required,oneof=csv postgres"`
	CSVPath     string `mapstructure:"csv_path"     validate:"required_if=Driver csv"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Driver postgres,omitempty,url"`
}

// MailConfig contains the SMTP identity and credentials used to deliver
// generated scripts, plus the administrative bcc recipient.
type MailConfig struct {
	SMTPHost    string `mapstructure:"smtp_host"     validate:"required,hostname"`
	SMTPPort    int    `mapstructure:"smtp_port"     validate:"required,gt=0,lt=65536"`
	SenderEmail string `mapstructure:"sender_email"  validate:"required,email"`
	SenderPass  string `mapstructure:"sender_pass"   validate:"required"`
	AdminEmail  string `mapstructure:"admin_email"   validate:"required,email"`
	MaxRetries  int    `mapstructure:"max_retries"   validate:"gte=0,lte=10"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"      validate:"required"`
	ModelName         string `mapstructure:"model_name"          validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=30"`
}

// TaskConfig controls the background job runner that processes script
// generation submissions.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0,lte=32"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0,lte=10000"`
}

// AdminConfig protects the leads views. PasswordHash is a bcrypt hash of
// the operator password; when empty, the leads views are left open (the
// behavior of the original deployment).
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}
