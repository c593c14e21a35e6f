package consts

const (
	// ResourceTypeSkillPost 通知关联资源类型
	ResourceTypeSkillPost = "SKILL_POST"
)

const (
	// NotifyPreviewThreshold 通知文案中评论内容的长度上限（按字符计）
	NotifyPreviewThreshold = 50
	// NotifyPreviewCut 超限时保留的前缀长度，后接省略号
	NotifyPreviewCut = 47
)

const (
	// TrendingCommentWeight 热度分中评论数的权重
	TrendingCommentWeight = 2
	// TrendingRecencyWeight 热度分中时效因子的权重
	TrendingRecencyWeight = 10
	// TrendingDecayDays 时效因子衰减到下限所需天数
	TrendingDecayDays = 30
	// TrendingRecencyFloor 时效因子下限
	TrendingRecencyFloor = 0.1
)
