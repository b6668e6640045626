package consts

const (
	AuthCodeKey      = "auth:code:"
	WizardSessionKey = "wizard:session:"
	MediaTempKey     = "media:temp"
)

const (
	WizardPublishLock = "lock:wizard:publish:"
)
