package model

// CoinType 金币奖励动作类型
type CoinType string

const (
	CoinTypePost               CoinType = "POST"
	CoinTypeComment            CoinType = "COMMENT"
	CoinTypeFollow             CoinType = "FOLLOW"
	CoinTypeLike               CoinType = "LIKE"
	CoinTypeChallengeCreation  CoinType = "CHALLENGE_CREATION"
	CoinTypeChallengeAttempt   CoinType = "CHALLENGE_ATTEMPT"
	CoinTypeProgressCompletion CoinType = "PROGRESS_COMPLETION"
)

// coinPoints 动作 → 奖励分值的静态映射，进程内只读，启动即固定
var coinPoints = map[CoinType]int{
	CoinTypePost:               10,
	CoinTypeComment:            5,
	CoinTypeFollow:             3,
	CoinTypeLike:               1,
	CoinTypeChallengeCreation:  8,
	CoinTypeChallengeAttempt:   2,
	CoinTypeProgressCompletion: 20,
}

// Points 返回该动作对应的奖励分值，未知动作为 0
func (t CoinType) Points() int {
	return coinPoints[t]
}

// Valid 判断是否为目录中登记的奖励动作
func (t CoinType) Valid() bool {
	_, ok := coinPoints[t]
	return ok
}
