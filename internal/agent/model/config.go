package model

import "time"

// ================ Config ================

type DictionaryConfig struct {
	Dir string `envconfig:"DICT_DIR" default:"./dict"`
}

// GraphConfig tunes graph retrieval. Relationship types must match the populated graph.
type GraphConfig struct {
	RelSymptom     string        `envconfig:"REL_SYMPTOM" default:"has_symptom"`
	RelFood        string        `envconfig:"REL_FOOD" default:"recommand_eat"`
	RelDrug        string        `envconfig:"REL_DRUG" default:"recommand_drug"`
	AnswerLimit    int           `envconfig:"GRAPH_ANSWER_LIMIT" default:"10"`
	MaxAttempts    int           `envconfig:"GRAPH_MAX_ATTEMPTS" default:"3"`
	InitialBackoff time.Duration `envconfig:"GRAPH_INITIAL_BACKOFF" default:"200ms"`
	MaxBackoff     time.Duration `envconfig:"GRAPH_MAX_BACKOFF" default:"2s"`
	Timeout        time.Duration `envconfig:"GRAPH_TIMEOUT" default:"8s"`
}

type GeneratorConfig struct {
	Backend        string        `envconfig:"GENERATOR_BACKEND" default:"deepseek"`
	Temperature    float32       `envconfig:"GENERATOR_TEMPERATURE" default:"0.7"`
	MaxTokens      int           `envconfig:"GENERATOR_MAX_TOKENS" default:"1024"`
	MaxAttempts    int           `envconfig:"GENERATOR_MAX_ATTEMPTS" default:"3"`
	InitialBackoff time.Duration `envconfig:"GENERATOR_INITIAL_BACKOFF" default:"1s"`
	MaxBackoff     time.Duration `envconfig:"GENERATOR_MAX_BACKOFF" default:"8s"`
	Timeout        time.Duration `envconfig:"GENERATOR_TIMEOUT" default:"15s"`
	RatePerSecond  float64       `envconfig:"GENERATOR_RATE" default:"5"`
	RateBurst      int           `envconfig:"GENERATOR_BURST" default:"10"`

	Gemini struct {
		APIKey  string `envconfig:"GEMINI_API_KEY"`
		BaseURL string `envconfig:"GEMINI_BASE_URL"`
		Model   string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	}
	DeepSeek struct {
		APIKey  string `envconfig:"DEEPSEEK_API_KEY"`
		BaseURL string `envconfig:"DEEPSEEK_BASE_URL" default:"https://api.deepseek.com"`
		Model   string `envconfig:"DEEPSEEK_MODEL" default:"deepseek-chat"`
	}
}

type PromptConfig struct {
	AssistantName string `envconfig:"PROMPT_ASSISTANT_NAME" default:"红蜘蛛"`
}

type CacheConfig struct {
	TTL time.Duration `envconfig:"CACHE_TTL" default:"24h"`
}
