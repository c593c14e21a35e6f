package service

import (
	"errors"
	"strings"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserEmailExist       = errors.New("邮箱已注册")
	ErrPasswordIncorrect    = errors.New("邮箱或密码错误")
	ErrPostNotFound         = errors.New("帖子不存在")
	ErrCommentNotFound      = errors.New("评论不存在")
	ErrNotificationNotFound = errors.New("通知不存在")
	ErrFollowSelf           = errors.New("不能关注自己")
	ErrUnfollowSelf         = errors.New("不能取消关注自己")
	ErrAlreadyFollowing     = errors.New("已经关注该用户")
	ErrNotFollowing         = errors.New("尚未关注该用户")
	ErrCoinTypeInvalid      = errors.New("未知的奖励动作")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrUserEmailExist:       BadRequest,
	ErrPasswordIncorrect:    Unauthorized,
	ErrPostNotFound:         NotFound,
	ErrCommentNotFound:      NotFound,
	ErrNotificationNotFound: NotFound,
	ErrFollowSelf:           BadRequest,
	ErrUnfollowSelf:         BadRequest,
	ErrAlreadyFollowing:     Conflict,
	ErrNotFollowing:         Conflict,
	ErrCoinTypeInvalid:      BadRequest,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}

// BatchError 批量操作的整体失败，携带全部问题ID而不是第一个
type BatchError struct {
	Message   string
	FailedIDs []string
}

func (e *BatchError) Error() string {
	return e.Message + ": " + strings.Join(e.FailedIDs, ", ")
}
