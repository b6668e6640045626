package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	LLM       LLMConfig       `mapstructure:"llm"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	LibPath   LibPathConfig   `mapstructure:"lib_path"`
	Publisher PublisherConfig `mapstructure:"publisher"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	BaseURL     string `mapstructure:"base_url"`
	CookieName  string `mapstructure:"cookie_name"`
	LandingPath string `mapstructure:"landing_path"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LLMConfig 大模型配置
type LLMConfig struct {
	URL         string           `mapstructure:"url"`
	TextModel   string           `mapstructure:"text_model"`
	ImageModel  string           `mapstructure:"image_model"`
	ApiKey      string           `mapstructure:"api_key"`
	PromptsPath TonePromptConfig `mapstructure:"prompts_path"`
}

// TonePromptConfig 各语气风格对应的系统提示词文件
type TonePromptConfig struct {
	Comedic     string `mapstructure:"comedic"`
	Casual      string `mapstructure:"casual"`
	Educational string `mapstructure:"educational"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	TempBucket       string `mapstructure:"temp_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	UsePublicLink    bool   `mapstructure:"use_public_link"`
}

// LibPathConfig 库路径
type LibPathConfig struct {
	FFmpeg       string `mapstructure:"ffmpeg"`
	FFprobe      string `mapstructure:"ffprobe"`
	Whisper      string `mapstructure:"whisper"`
	WhisperModel string `mapstructure:"whisper_model"`
}

// PublisherConfig 外部平台发布配置
type PublisherConfig struct {
	X       XConfig       `mapstructure:"x"`
	Threads ThreadsConfig `mapstructure:"threads"`
}

// XConfig X(Twitter) API v2
type XConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	BearerToken string `mapstructure:"bearer_token"`
}

// ThreadsConfig Instagram Threads Graph API
type ThreadsConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	AccessToken string `mapstructure:"access_token"`
	AccountID   string `mapstructure:"account_id"`
}
