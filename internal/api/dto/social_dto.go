package dto

// FollowListDTO 粉丝与关注列表响应
type FollowListDTO struct {
	Followers  []*UserSimpleDTO `json:"followers"`
	Followings []*UserSimpleDTO `json:"followings"`
}

// IsFollowingDTO 关注关系查询响应
type IsFollowingDTO struct {
	Following bool `json:"following"`
}
