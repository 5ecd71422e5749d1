package post

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrHashtagNotFound = errors.New("hashtag not found")
	ErrNotAuthor       = errors.New("not the author of this content")
	ErrAlreadyLiked    = errors.New("you have already liked this post")
	ErrLikeNotFound    = errors.New("like not found")
)
