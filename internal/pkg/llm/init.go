package llm

import (
	"ThreadFarm/internal/api/config"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var llmClient llms.Model

func InitLLM() error {
	cfg := config.Cfg.LLM

	llm, err := openai.New(
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)

	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return err
	}

	llmClient = llm

	// 从prompt txt文件中读取各风格的系统提示词
	tonePrompts[ToneComedic] = readPrompt(cfg.PromptsPath.Comedic)
	tonePrompts[ToneCasual] = readPrompt(cfg.PromptsPath.Casual)
	tonePrompts[ToneEducational] = readPrompt(cfg.PromptsPath.Educational)

	return nil
}
