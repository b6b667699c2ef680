package audit

import (
	"time"
)

type ListFilter struct {
	Entity   string
	Action   string
	DateFrom *time.Time
	Actor    string
	Limit    int
}

type ActorActivity struct {
	Actor string `json:"actor"`
	Count int64  `json:"count"`
}

type Stats struct {
	Total          int             `json:"total"`
	ByAction       map[string]int  `json:"by_action"`
	DistinctActors int             `json:"distinct_actors"`
	TopActors      []ActorActivity `json:"top_actors"`
}

type ListResponse struct {
	Entries []*Entry `json:"entries"`
	Count   int      `json:"count"`
}
