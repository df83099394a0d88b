package hiscores

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrSkillNotFound   = errors.New("skill_not_found")
	ErrPlayerNotFound  = errors.New("player_not_found")
	ErrProfileHidden   = errors.New("profile_hidden")
	ErrCatalogUnseeded = errors.New("skill_catalog_unseeded")
	ErrAggregateWrite  = errors.New("aggregate_skill_readonly")
)
