package model

import "time"

// RequestLog counts how many times a (method, path) pair has been hit.
type RequestLog struct {
	Method   string    `bson:"method" json:"method"`
	Path     string    `bson:"path" json:"path"`
	Client   string    `bson:"client,omitempty" json:"client,omitempty"`
	Count    int64     `bson:"count" json:"count"`
	LastSeen time.Time `bson:"last_seen" json:"last_seen"`
}
