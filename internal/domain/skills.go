package domain

// SkillCategory groups skill names under a titled heading. Category order
// and skill order are both display-significant and owner-editable.
type SkillCategory struct {
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}

func (s SkillCategory) Clone() SkillCategory {
	out := s
	out.Skills = append([]string(nil), s.Skills...)
	return out
}
