package config

type Config struct {
	DatabaseURL string
	OpenAIKey   string
	GoogleAIKey string // optional; chat degrades to a fixed answer without it
	Environment string
}

type Flags struct {
	Path string
}
