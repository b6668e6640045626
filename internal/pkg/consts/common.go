package consts

const (
	MimePrefixImage = "image"
	MimePrefixAudio = "audio"
	MimePrefixVideo = "video"
)

const (
	ThreadStatusDraft     = "draft"
	ThreadStatusPublished = "published"
)

const (
	ToneComedic     = "comedic"
	ToneCasual      = "casual"
	ToneEducational = "educational"
)

const (
	PlatformX       = "x"
	PlatformThreads = "threads"
)

const (
	PostCountMin = 1
	PostCountMax = 25
	CharLimitMin = 0
	CharLimitMax = 500
)
