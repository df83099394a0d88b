package hiscores

import "ashfall/internal/store"

type SkillPageItem struct {
	Position   int    `json:"position"`
	Username   string `json:"username"`
	Level      int32  `json:"level"`
	Experience int64  `json:"experience"`
}

type SkillPageResponse struct {
	Skill  string          `json:"skill"`
	Group  int32           `json:"persistence_group_id"`
	Items  []SkillPageItem `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type ProfileSkill struct {
	Skill      string `json:"skill"`
	Level      int32  `json:"level"`
	Experience int64  `json:"experience"`
	Rank       *int32 `json:"rank"`
}

type ProfileResponse struct {
	Username string         `json:"username"`
	Group    int32          `json:"persistence_group_id"`
	Skills   []ProfileSkill `json:"skills"`
}

// RecomputeRequest is the trusted coalesced trigger: aggregates are
// refreshed for the touched accounts, then ranks for the touched skills
// plus the aggregate.
type RecomputeRequest struct {
	PersistenceGroupID int32   `json:"persistence_group_id"`
	AccountIDs         []int64 `json:"account_ids"`
	SkillIDs           []int32 `json:"skill_ids"`
}

type SkillWriteRequest struct {
	PersistenceGroupID int32              `json:"persistence_group_id"`
	AccountID          int64              `json:"account_id"`
	Skills             []store.SkillWrite `json:"skills"`
}
