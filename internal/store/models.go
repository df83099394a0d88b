package store

import "time"

type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	IsPermBanned bool
	IsMuted      bool
	CreatedAt    time.Time
}

type World struct {
	ID                 int32
	PersistenceGroupID int32
	Name               string
	Address            string
	Tags               string
	IsActive           bool
	IsDevelopment      bool
	LastHeartbeat      *time.Time
	CreatedAt          time.Time
}

// WorldStatus is a World joined with its current online count for
// observability reads.
type WorldStatus struct {
	World
	OnlineCount int
}

type PresenceEntry struct {
	ID        string
	AccountID *int64
	Username  string
	WorldID   int32
	LastSeen  time.Time
}

type LoginToken struct {
	ID            string
	Token         string
	AccountID     int64
	WorldID       int32
	ClientVersion int32
	RequesterIP   string
	ExpiresAt     time.Time
	UsedAt        *time.Time
	CreatedAt     time.Time
}

type SkillDefinition struct {
	ID          int32
	Slug        string
	DisplayName string
	IsAggregate bool
	SortOrder   int32
}

type PlayerSkill struct {
	AccountID          int64
	PersistenceGroupID int32
	SkillID            int32
	Level              int32
	Experience         int64
	Rank               *int32
}

// PlayerSkillEntry is a PlayerSkill joined with its skill definition,
// used by profile reads.
type PlayerSkillEntry struct {
	PlayerSkill
	Slug        string
	DisplayName string
	IsAggregate bool
}

type HiscoreRow struct {
	AccountID  int64
	Username   string
	Level      int32
	Experience int64
	Rank       *int32
}

type PlayerLocation struct {
	AccountID          int64
	PersistenceGroupID int32
	X                  int32
	Y                  int32
	Plane              int32
}

type InventoryItem struct {
	Slot     int32
	ItemID   int32
	Quantity int32
}

// SkillWrite is one entry of a trusted bulk skill upsert from a world.
type SkillWrite struct {
	SkillID    int32 `json:"skill_id"`
	Level      int32 `json:"level"`
	Experience int64 `json:"experience"`
}
