package consts

const (
	PostViewKey          = "post:view:"
	PostReactionCountKey = "post:reaction:count:"
	PostCommentCountKey  = "post:comment:count:"
	TokenRevokedKey      = "auth:token:revoked:"
)

const (
	MediaUploadLock      = "media:upload:lock:"
	ScheduledPublishLock = "post:publish:scheduled:lock"
)
