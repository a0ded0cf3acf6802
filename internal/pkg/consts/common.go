package consts

const (
	MimeGif = "image/gif"
)

const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
)
