package server

import (
	"PicCloud/handler"
)

type Handlers struct {
	User    *handler.User
	Picture *handler.Picture
}
