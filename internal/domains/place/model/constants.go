package model

import "regexp"

// HoursPattern accepts 24h "HH:MM"
var HoursPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

const (
	PublicCacheKeyPrefix = "place:public:"
	MaxTags              = 20
)
