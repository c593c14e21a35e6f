package consts

const (
	NotifyUnreadCountKey = "notify:unread:count:"
	NotifyChannelKey     = "notify:channel:"
	TokenBlacklistKey    = "token:blacklist:"
)
