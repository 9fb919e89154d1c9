package types

// ExperienceLevel 经验级别枚举
type ExperienceLevel string

const (
	// LevelEntry 入门级（没有匹配到任何经验动词时的默认值）
	LevelEntry ExperienceLevel = "Entry Level"
	// LevelMidJunior 初中级
	LevelMidJunior ExperienceLevel = "Mid-Junior"
	// LevelMidSenior 中高级
	LevelMidSenior ExperienceLevel = "Mid-Senior"
	// LevelSenior 高级
	LevelSenior ExperienceLevel = "Senior"
)

// PositionNotIdentified 无法从动词集合推断岗位时的默认建议岗位
const PositionNotIdentified = "Position Not Identified"

// Experience 从简历动词推断出的经验信息
type Experience struct {
	LevelOfExperience ExperienceLevel `json:"level_of_experience"` // 经验级别
	SuggestedPosition string          `json:"suggested_position"`  // 建议岗位
}

// CandidateRecord 从一份简历聚合出的结构化候选人信息
// 所有字段都有确定的零值默认（空字符串/空切片），不存在缺失字段；
// 只有聚合器负责一次性完整构建该记录
type CandidateRecord struct {
	FirstName   string     `json:"first_name"`   // 名
	LastName    string     `json:"last_name"`    // 姓
	Email       string     `json:"email"`        // 邮箱
	Phone       string     `json:"phone"`        // 电话（纯数字串）
	DegreeMajor string     `json:"degree_major"` // 学位/专业
	Education   []string   `json:"education"`    // 教育机构列表
	Skills      []string   `json:"skills"`       // 技能列表（排序去重，保留原始大小写）
	Experience  Experience `json:"experience"`   // 经验信息
}

// FullName 返回拼接后的完整姓名，两部分都为空时返回空字符串
func (r *CandidateRecord) FullName() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	default:
		return r.FirstName + " " + r.LastName
	}
}

// MatchResult 候选人技能与招聘方要求技能的匹配结果（派生数据，不持久化）
type MatchResult struct {
	Matched      []string `json:"matched"`       // 命中的要求技能
	Missing      []string `json:"missing"`       // 缺失的要求技能
	ScorePercent float64  `json:"score_percent"` // 匹配百分比，[0,100]，保留两位小数
}
