package llm

const (
	ToneComedic     = "comedic"
	ToneCasual      = "casual"
	ToneEducational = "educational"
)

// tonePrompts 风格 -> 系统提示词，在 InitLLM 时填充
var tonePrompts = map[string]string{}

// ValidTone 判断风格是否在枚举范围内
func ValidTone(tone string) bool {
	switch tone {
	case ToneComedic, ToneCasual, ToneEducational:
		return true
	}
	return false
}

// TonePrompt 获取风格对应的系统提示词
func TonePrompt(tone string) (string, bool) {
	prompt, ok := tonePrompts[tone]
	return prompt, ok
}
